package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/contact"
	"github.com/jonathan/resume-builder/internal/types"
)

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, types.ThemeRequest{Theme: string(s.themes.Get(r.Context()))})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req types.ThemeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, &ErrValidation{Field: "theme", Message: "must be light or dark"})
		return
	}

	theme, _ := types.ParseTheme(req.Theme)
	s.themes.Set(r.Context(), theme)
	s.jsonResponse(w, http.StatusOK, types.ThemeRequest{Theme: string(theme)})
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var msg contact.Message
	if !s.decodeJSON(w, r, &msg) {
		return
	}

	if err := s.contact.Submit(r.Context(), msg); err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": contact.SuccessMessage})
}
