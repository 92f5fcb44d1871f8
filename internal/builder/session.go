package builder

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/assist"
	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultEnhanceLimit bounds concurrent enhancements in EnhanceAllExperience
const DefaultEnhanceLimit = 4

// PDFExporter prints rendered documents.
type PDFExporter interface {
	PDF(ctx context.Context, doc *rendering.Document) ([]byte, error)
	ExportPDF(ctx context.Context, doc *rendering.Document, filename string) (string, error)
}

// Session runs editor flows against one store. AI calls read a snapshot and
// never hold the store lock; their results are written back with a single action.
type Session struct {
	store        *store.Store
	gateway      *assist.Gateway
	registry     *rendering.Registry
	exporter     PDFExporter
	enhanceLimit int
	log          zerolog.Logger
}

// Option configures a Session
type Option func(*Session)

// WithRegistry replaces the default template registry.
func WithRegistry(r *rendering.Registry) Option {
	return func(s *Session) { s.registry = r }
}

// WithExporter sets the PDF exporter used by Export and PDF.
func WithExporter(e PDFExporter) Option {
	return func(s *Session) { s.exporter = e }
}

// WithEnhanceLimit sets how many enhancements EnhanceAllExperience runs at once.
func WithEnhanceLimit(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.enhanceLimit = n
		}
	}
}

// NewSession creates a Session. gateway may be nil when no API key is
// configured; AI flows then fail with an assist.GenerationError.
func NewSession(st *store.Store, gateway *assist.Gateway, opts ...Option) (*Session, error) {
	s := &Session{
		store:        st,
		gateway:      gateway,
		enhanceLimit: DefaultEnhanceLimit,
		log:          logger.WithComponent("builder"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		r, err := rendering.Default()
		if err != nil {
			return nil, err
		}
		s.registry = r
	}
	return s, nil
}

// Store returns the underlying document store.
func (s *Session) Store() *store.Store {
	return s.store
}

func (s *Session) gatewayFor(op string) (*assist.Gateway, error) {
	if s.gateway == nil {
		return nil, &assist.GenerationError{Op: op, Message: "AI assist is not configured"}
	}
	return s.gateway, nil
}

// GenerateSummary replaces the summary with a generated one.
func (s *Session) GenerateSummary(ctx context.Context) (types.ResumeData, error) {
	g, err := s.gatewayFor(assist.OpSummary)
	if err != nil {
		return s.store.Snapshot(), err
	}

	summary, err := g.GenerateSummary(ctx, s.store.Snapshot())
	if err != nil {
		return s.store.Snapshot(), err
	}
	return s.store.Dispatch(ctx, store.SetField{Field: types.FieldSummary, Value: summary})
}

// SuggestSkills replaces the skills with suggestions for the first
// experience entry's title.
func (s *Session) SuggestSkills(ctx context.Context) (types.ResumeData, error) {
	g, err := s.gatewayFor(assist.OpSkills)
	if err != nil {
		return s.store.Snapshot(), err
	}

	snap := s.store.Snapshot()
	title := ""
	if len(snap.Experience) > 0 {
		title = snap.Experience[0].Title
	}

	skills, err := g.SuggestSkills(ctx, title)
	if err != nil {
		return s.store.Snapshot(), err
	}
	return s.store.Dispatch(ctx, store.SetField{Field: types.FieldSkills, Value: skills})
}

// EnhanceExperience rewrites the description of one experience entry.
// The gateway is not called when the entry does not exist.
func (s *Session) EnhanceExperience(ctx context.Context, id string) (types.ResumeData, error) {
	snap := s.store.Snapshot()
	exp, ok := snap.FindExperience(id)
	if !ok {
		return snap, &NotFoundError{List: types.ListExperience, ID: id}
	}

	g, err := s.gatewayFor(assist.OpEnhance)
	if err != nil {
		return snap, err
	}

	description, err := g.EnhanceBullet(ctx, exp.Description, assist.EnhanceContext(exp.Title, snap.Summary))
	if err != nil {
		return s.store.Snapshot(), err
	}
	return s.store.Dispatch(ctx, store.UpdateItem{
		List:  types.ListExperience,
		ID:    id,
		Patch: store.ExperiencePatch{Description: store.Str(description)},
	})
}

// EnhanceAllExperience enhances every experience entry concurrently. Each
// success is applied on its own; the first failure is returned after all
// calls finish.
func (s *Session) EnhanceAllExperience(ctx context.Context) (types.ResumeData, error) {
	snap := s.store.Snapshot()

	var g errgroup.Group
	g.SetLimit(s.enhanceLimit)
	for _, exp := range snap.Experience {
		id := exp.ID
		g.Go(func() error {
			_, err := s.EnhanceExperience(ctx, id)
			if err != nil {
				s.log.Warn().Err(err).Str("id", id).Msg("Enhancement failed")
			}
			return err
		})
	}
	err := g.Wait()
	return s.store.Snapshot(), err
}

// AnalyzeKeywords lists keywords from jobDescription that the resume lacks.
func (s *Session) AnalyzeKeywords(ctx context.Context, jobDescription string) ([]string, error) {
	req := types.JobDescriptionRequest{JobDescription: jobDescription}
	if err := req.Validate(); err != nil {
		return nil, &InputError{Message: MissingJobDescriptionForKeywords, Cause: err}
	}

	g, err := s.gatewayFor(assist.OpKeywords)
	if err != nil {
		return nil, err
	}
	return g.AnalyzeKeywords(ctx, s.store.Snapshot(), req.JobDescription)
}

// GenerateDraft replaces the whole document with a generated draft.
func (s *Session) GenerateDraft(ctx context.Context, jobTitle string) (types.ResumeData, error) {
	req := types.DraftRequest{JobTitle: jobTitle}
	if err := req.Validate(); err != nil {
		return s.store.Snapshot(), &InputError{Message: MissingJobTitle, Cause: err}
	}

	g, err := s.gatewayFor(assist.OpDraft)
	if err != nil {
		return s.store.Snapshot(), err
	}

	draft, err := g.GenerateDraft(ctx, req.JobTitle)
	if err != nil {
		return s.store.Snapshot(), err
	}
	return s.store.Dispatch(ctx, store.LoadDraft{Data: *draft})
}

// CoverLetter writes a cover letter. The letter is not stored.
func (s *Session) CoverLetter(ctx context.Context, jobDescription string) (string, error) {
	req := types.JobDescriptionRequest{JobDescription: jobDescription}
	if err := req.Validate(); err != nil {
		return "", &InputError{Message: MissingJobDescriptionForLetter, Cause: err}
	}

	g, err := s.gatewayFor(assist.OpCoverLetter)
	if err != nil {
		return "", err
	}
	return g.GenerateCoverLetter(ctx, s.store.Snapshot(), req.JobDescription)
}

// Render renders the current document with the named template.
// Unknown template ids render as classic.
func (s *Session) Render(id types.TemplateID) (*rendering.Document, error) {
	return s.registry.Render(s.store.Snapshot(), types.TemplateID(strings.TrimSpace(string(id))))
}

// PDF renders the current document and prints it.
func (s *Session) PDF(ctx context.Context, id types.TemplateID) ([]byte, error) {
	doc, err := s.Render(id)
	if err != nil {
		return nil, err
	}
	if s.exporter == nil {
		return nil, errNoExporter
	}
	return s.exporter.PDF(ctx, doc)
}

// Export renders the current document, prints it and stores the PDF.
func (s *Session) Export(ctx context.Context, id types.TemplateID, filename string) (string, error) {
	doc, err := s.Render(id)
	if err != nil {
		return "", err
	}
	if s.exporter == nil {
		return "", errNoExporter
	}
	return s.exporter.ExportPDF(ctx, doc, filename)
}
