package server

import (
	"io"
	"net/http"

	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

// AddItemResponse is returned when a list element is created
type AddItemResponse struct {
	ID     string           `json:"id"`
	Resume types.ResumeData `json:"resume"`
}

func (s *Server) handleGetResume(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.session.Store().Snapshot())
}

// handleLoadResume replaces the whole document with the request body.
func (s *Server) handleLoadResume(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	doc, err := store.ImportDraft(body)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.dispatch(w, r, store.LoadDraft{Data: doc})
}

func (s *Server) handleResetResume(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, store.ResetData{})
}

func (s *Server) handleGetField(w http.ResponseWriter, r *http.Request) {
	field, err := types.ParseField(r.PathValue("field"))
	if err != nil {
		s.failure(w, &ErrValidation{Field: "field", Message: err.Error()})
		return
	}
	doc := s.session.Store().Snapshot()
	s.jsonResponse(w, http.StatusOK, types.FieldValueRequest{Value: doc.Field(field)})
}

func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request) {
	field, err := types.ParseField(r.PathValue("field"))
	if err != nil {
		s.failure(w, &ErrValidation{Field: "field", Message: err.Error()})
		return
	}

	var req types.FieldValueRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	s.dispatch(w, r, store.SetField{Field: field, Value: req.Value})
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	list, ok := s.listParam(w, r)
	if !ok {
		return
	}

	id, doc, err := s.session.Store().Add(r.Context(), list)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, AddItemResponse{ID: id, Resume: doc})
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	list, ok := s.listParam(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	patch, err := store.DecodePatch(list, body)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.dispatch(w, r, store.UpdateItem{List: list, ID: r.PathValue("id"), Patch: patch})
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	list, ok := s.listParam(w, r)
	if !ok {
		return
	}
	s.dispatch(w, r, store.DeleteItem{List: list, ID: r.PathValue("id")})
}

func (s *Server) listParam(w http.ResponseWriter, r *http.Request) (types.ListName, bool) {
	list, err := types.ParseListName(r.PathValue("list"))
	if err != nil {
		s.failure(w, &ErrValidation{Field: "list", Message: err.Error()})
		return "", false
	}
	return list, true
}

// dispatch applies an action and responds with the resulting document.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, a store.Action) {
	doc, err := s.session.Store().Dispatch(r.Context(), a)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}
