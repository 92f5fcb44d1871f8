package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"templates": types.Templates,
		"default":   types.DefaultTemplate,
	})
}

// handleRender returns the rendered HTML, or its visible text with ?format=text.
// Unknown templates render as classic.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	doc, err := s.session.Render(types.TemplateID(r.PathValue("template")))
	if err != nil {
		s.failure(w, err)
		return
	}
	w.Header().Set("X-Resume-Template", string(doc.Template))

	if r.URL.Query().Get("format") == "text" {
		text, err := rendering.PlainText(doc)
		if err != nil {
			s.failure(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(text))
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	_, _ = w.Write(doc.HTML)
}

// handleExport returns the rendered document as a PDF download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := context.WithoutCancel(r.Context())
	pdf, err := s.session.PDF(ctx, types.TemplateID(r.PathValue("template")))
	if err != nil {
		s.failure(w, err)
		return
	}

	filename := export.CleanFilename(r.URL.Query().Get("filename"))
	w.Header().Set("Content-Type", export.ContentTypePDF)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", strconv.Quote(filename)))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	_, _ = w.Write(pdf)
}
