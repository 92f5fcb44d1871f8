package server

import (
	"context"
	"net/http"

	"github.com/jonathan/resume-builder/internal/types"
)

// Model calls are detached from the request so a client disconnect does not
// abandon a write-back halfway.

// KeywordsResponse lists keywords missing from the resume
type KeywordsResponse struct {
	Keywords []string `json:"keywords"`
}

// CoverLetterResponse carries a generated cover letter
type CoverLetterResponse struct {
	CoverLetter string `json:"cover_letter"`
}

func (s *Server) handleAssistSummary(w http.ResponseWriter, r *http.Request) {
	doc, err := s.session.GenerateSummary(context.WithoutCancel(r.Context()))
	s.documentResult(w, doc, err)
}

func (s *Server) handleAssistSkills(w http.ResponseWriter, r *http.Request) {
	doc, err := s.session.SuggestSkills(context.WithoutCancel(r.Context()))
	s.documentResult(w, doc, err)
}

func (s *Server) handleAssistEnhance(w http.ResponseWriter, r *http.Request) {
	doc, err := s.session.EnhanceExperience(context.WithoutCancel(r.Context()), r.PathValue("id"))
	s.documentResult(w, doc, err)
}

func (s *Server) handleAssistEnhanceAll(w http.ResponseWriter, r *http.Request) {
	doc, err := s.session.EnhanceAllExperience(context.WithoutCancel(r.Context()))
	s.documentResult(w, doc, err)
}

func (s *Server) handleAssistKeywords(w http.ResponseWriter, r *http.Request) {
	var req types.JobDescriptionRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	keywords, err := s.session.AnalyzeKeywords(context.WithoutCancel(r.Context()), req.JobDescription)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, KeywordsResponse{Keywords: keywords})
}

func (s *Server) handleAssistDraft(w http.ResponseWriter, r *http.Request) {
	var req types.DraftRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	doc, err := s.session.GenerateDraft(context.WithoutCancel(r.Context()), req.JobTitle)
	s.documentResult(w, doc, err)
}

func (s *Server) handleAssistCoverLetter(w http.ResponseWriter, r *http.Request) {
	var req types.JobDescriptionRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	letter, err := s.session.CoverLetter(context.WithoutCancel(r.Context()), req.JobDescription)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, CoverLetterResponse{CoverLetter: letter})
}

func (s *Server) documentResult(w http.ResponseWriter, doc types.ResumeData, err error) {
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}
