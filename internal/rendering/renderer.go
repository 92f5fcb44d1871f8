package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

// PreviewElementID is the id of the element wrapping the rendered resume.
// The PDF exporter captures exactly this element.
const PreviewElementID = "resume-preview-content"

// ContentTypeHTML is the content type of every rendered document
const ContentTypeHTML = "text/html; charset=utf-8"

//go:embed templates/*.html
var templateFS embed.FS

// Document is the output of a renderer
type Document struct {
	Template    types.TemplateID
	ContentType string
	HTML        []byte
}

// Renderer renders a resume in one fixed layout
type Renderer interface {
	ID() types.TemplateID
	Render(data types.ResumeData) (*Document, error)
}

// htmlRenderer executes one parsed layout. Parsed templates are never
// modified after construction, so a renderer is safe for concurrent use.
type htmlRenderer struct {
	id   types.TemplateID
	tmpl *template.Template
}

func (r *htmlRenderer) ID() types.TemplateID {
	return r.id
}

func (r *htmlRenderer) Render(data types.ResumeData) (*Document, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "page", NewView(data)); err != nil {
		return nil, &TemplateError{
			Template: string(r.id),
			Message:  "failed to execute template",
			Cause:    err,
		}
	}
	return &Document{Template: r.id, ContentType: ContentTypeHTML, HTML: buf.Bytes()}, nil
}

var funcs = template.FuncMap{
	"upper": strings.ToUpper,
	"previewID": func() string {
		return PreviewElementID
	},
}

// parseLayout parses the shared page shell together with one layout file.
func parseLayout(id types.TemplateID) (*htmlRenderer, error) {
	tmpl, err := template.New(string(id)).Funcs(funcs).ParseFS(templateFS,
		"templates/base.html",
		fmt.Sprintf("templates/%s.html", id),
	)
	if err != nil {
		return nil, &TemplateError{
			Template: string(id),
			Message:  "failed to parse template",
			Cause:    err,
		}
	}
	return &htmlRenderer{id: id, tmpl: tmpl}, nil
}

// Registry maps template ids to renderers
type Registry struct {
	renderers map[types.TemplateID]Renderer
}

// NewRegistry parses every built-in layout.
func NewRegistry() (*Registry, error) {
	r := &Registry{renderers: make(map[types.TemplateID]Renderer, len(types.Templates))}
	for _, id := range types.Templates {
		renderer, err := parseLayout(id)
		if err != nil {
			return nil, err
		}
		r.renderers[id] = renderer
	}
	return r, nil
}

// Resolve returns the renderer for id. Unknown ids resolve to the default
// (classic) renderer rather than failing.
func (r *Registry) Resolve(id types.TemplateID) Renderer {
	if renderer, ok := r.renderers[id]; ok {
		return renderer
	}
	return r.renderers[types.DefaultTemplate]
}

// Render renders data with the layout named by id.
func (r *Registry) Render(data types.ResumeData, id types.TemplateID) (*Document, error) {
	return r.Resolve(id).Render(data)
}

// IDs lists the available templates in gallery order.
func (r *Registry) IDs() []types.TemplateID {
	ids := make([]types.TemplateID, 0, len(r.renderers))
	for _, id := range types.Templates {
		if _, ok := r.renderers[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

var defaultRegistry = sync.OnceValues(NewRegistry)

// Default returns the registry of built-in layouts, parsed once.
func Default() (*Registry, error) {
	return defaultRegistry()
}

// Render renders data with the built-in layout named by id.
func Render(data types.ResumeData, id types.TemplateID) (*Document, error) {
	reg, err := Default()
	if err != nil {
		return nil, &RenderError{Message: "failed to load templates", Cause: err}
	}
	return reg.Render(data, id)
}
