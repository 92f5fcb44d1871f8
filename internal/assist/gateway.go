package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultSkillsTitle is used when the document has no job title to suggest skills for
const DefaultSkillsTitle = "relevant field"

// Tiers maps each operation to a model tier
type Tiers map[string]llm.ModelTier

// DefaultTiers runs list suggestions on the lite tier, cover letters on the
// advanced tier and everything else on the standard tier.
func DefaultTiers() Tiers {
	return Tiers{
		OpSummary:     llm.TierStandard,
		OpEnhance:     llm.TierStandard,
		OpSkills:      llm.TierLite,
		OpKeywords:    llm.TierLite,
		OpDraft:       llm.TierStandard,
		OpCoverLetter: llm.TierAdvanced,
	}
}

// Gateway turns document data into prompts and model output into values.
// It holds no document state; callers decide what to write back.
type Gateway struct {
	client llm.Client
	tiers  Tiers
	log    zerolog.Logger
}

// Option configures a Gateway
type Option func(*Gateway)

// WithTiers overrides the model tier per operation.
func WithTiers(t Tiers) Option {
	return func(g *Gateway) {
		for op, tier := range t {
			g.tiers[op] = tier
		}
	}
}

// New creates a Gateway over client.
func New(client llm.Client, opts ...Option) *Gateway {
	g := &Gateway{
		client: client,
		tiers:  DefaultTiers(),
		log:    logger.WithComponent("assist"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateSummary writes a 2-3 sentence summary from every field except the current summary.
func (g *Gateway) GenerateSummary(ctx context.Context, data types.ResumeData) (string, error) {
	resumeText, err := SummaryContext(data)
	if err != nil {
		return "", &GenerationError{Op: OpSummary, Message: "failed to serialize resume", Cause: err}
	}
	return g.text(ctx, OpSummary, "summary", map[string]string{"ResumeText": resumeText})
}

// EnhanceBullet rewrites an experience description in a more action-oriented style.
func (g *Gateway) EnhanceBullet(ctx context.Context, description, jobContext string) (string, error) {
	return g.text(ctx, OpEnhance, "enhance-bullet", map[string]string{
		"Context": jobContext,
		"Bullet":  description,
	})
}

// SuggestSkills returns a comma-separated skill list for jobTitle.
func (g *Gateway) SuggestSkills(ctx context.Context, jobTitle string) (string, error) {
	if strings.TrimSpace(jobTitle) == "" {
		jobTitle = DefaultSkillsTitle
	}
	return g.text(ctx, OpSkills, "suggest-skills", map[string]string{"JobTitle": jobTitle})
}

// AnalyzeKeywords lists job description keywords the resume lacks.
func (g *Gateway) AnalyzeKeywords(ctx context.Context, data types.ResumeData, jobDescription string) ([]string, error) {
	data.Normalize()
	resumeText, err := encodeJSON(data, "")
	if err != nil {
		return nil, &GenerationError{Op: OpKeywords, Message: "failed to serialize resume", Cause: err}
	}

	raw, err := g.text(ctx, OpKeywords, "ats-keywords", map[string]string{
		"ResumeText":     resumeText,
		"JobDescription": jobDescription,
	})
	if err != nil {
		return nil, err
	}
	return SplitKeywords(raw), nil
}

// GenerateCoverLetter writes a cover letter for jobDescription based on the resume.
func (g *Gateway) GenerateCoverLetter(ctx context.Context, data types.ResumeData, jobDescription string) (string, error) {
	data.Normalize()
	resume, err := encodeJSON(data, "  ")
	if err != nil {
		return "", &GenerationError{Op: OpCoverLetter, Message: "failed to serialize resume", Cause: err}
	}
	return g.text(ctx, OpCoverLetter, "cover-letter", map[string]string{
		"Resume":         resume,
		"JobDescription": jobDescription,
	})
}

// GenerateDraft produces a complete fictional resume for jobTitle. Every list
// element of the result carries a fresh id. On any failure no document is returned.
func (g *Gateway) GenerateDraft(ctx context.Context, jobTitle string) (*types.ResumeData, error) {
	prompt, err := prompts.Render(prompts.AssistFile, "resume-draft", map[string]string{"JobTitle": jobTitle})
	if err != nil {
		return nil, &GenerationError{Op: OpDraft, Message: "failed to build prompt", Cause: err}
	}
	schema, err := draftSchema(jobTitle)
	if err != nil {
		return nil, &GenerationError{Op: OpDraft, Message: "failed to build response schema", Cause: err}
	}

	start := time.Now()
	text, err := g.client.GenerateJSON(ctx, prompt, g.tier(OpDraft), schema)
	if err != nil {
		g.log.Error().Err(err).Str("op", OpDraft).Msg("Generation failed")
		return nil, &GenerationError{Op: OpDraft, Message: "failed to generate content", Cause: err}
	}
	text = llm.CleanJSONBlock(text)

	if err := schemas.Validate(draftResume{}, text); err != nil {
		g.log.Warn().Err(err).Str("op", OpDraft).Msg("Generated draft does not match schema")
		return nil, invalidFormat(err)
	}
	draft, err := decodeDraft(text)
	if err != nil {
		return nil, invalidFormat(err)
	}

	doc := draft.toResume()
	g.log.Info().
		Str("op", OpDraft).
		Dur("elapsed", time.Since(start)).
		Int("experience", len(doc.Experience)).
		Msg("Generated draft")
	return &doc, nil
}

// invalidFormat reports output that could not be turned into a document.
func invalidFormat(cause error) *GenerationError {
	detail := cause.Error()
	var validationErr *schemas.ValidationError
	if errors.As(cause, &validationErr) {
		detail = validationErr.Summary()
	}
	return &GenerationError{
		Op:      OpDraft,
		Message: fmt.Sprintf("The AI returned an invalid format: %s. Please try again.", detail),
		Cause:   cause,
	}
}

// text runs a free-text prompt and returns the cleaned output.
func (g *Gateway) text(ctx context.Context, op, key string, data map[string]string) (string, error) {
	prompt, err := prompts.Render(prompts.AssistFile, key, data)
	if err != nil {
		return "", &GenerationError{Op: op, Message: "failed to build prompt", Cause: err}
	}

	start := time.Now()
	out, err := g.client.GenerateContent(ctx, prompt, g.tier(op))
	if err != nil {
		g.log.Error().Err(err).Str("op", op).Msg("Generation failed")
		return "", &GenerationError{Op: op, Message: "failed to generate content", Cause: err}
	}

	out = cleanText(out)
	if out == "" {
		g.log.Warn().Str("op", op).Msg("Model returned no text")
		return "", &GenerationError{Op: op, Message: "the model returned an empty response"}
	}

	g.log.Debug().Str("op", op).Dur("elapsed", time.Since(start)).Int("chars", len(out)).Msg("Generated text")
	return out, nil
}

func (g *Gateway) tier(op string) llm.ModelTier {
	if tier, ok := g.tiers[op]; ok {
		return tier
	}
	return llm.TierStandard
}

// SummaryContext renders every field except the summary as "key:\n<indented JSON>",
// separated by blank lines.
func SummaryContext(data types.ResumeData) (string, error) {
	data.Normalize()
	entries := []struct {
		key   string
		value any
	}{
		{"name", data.Name},
		{"email", data.Email},
		{"phone", data.Phone},
		{"website", data.Website},
		{"skills", data.Skills},
		{"education", data.Education},
		{"experience", data.Experience},
		{"projects", data.Projects},
	}

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		value, err := encodeJSON(e.value, "  ")
		if err != nil {
			return "", err
		}
		parts = append(parts, e.key+":\n"+value)
	}
	return strings.Join(parts, "\n\n"), nil
}

// EnhanceContext is the context line sent with an experience description.
func EnhanceContext(title, summary string) string {
	return fmt.Sprintf("Job Title: %s. Resume Summary: %s", title, summary)
}

// encodeJSON encodes v without HTML escaping; an empty indent gives compact output.
func encodeJSON(v any, indent string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
