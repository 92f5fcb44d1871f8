package builder

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/assist"
	"github.com/jonathan/resume-builder/internal/kv"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

// scriptedClient answers each prompt with respond.
type scriptedClient struct {
	mu      sync.Mutex
	prompts []string
	calls   atomic.Int32
	respond func(prompt string) (string, error)
}

func (c *scriptedClient) record(prompt string) (string, error) {
	c.calls.Add(1)
	c.mu.Lock()
	c.prompts = append(c.prompts, prompt)
	c.mu.Unlock()
	return c.respond(prompt)
}

func (c *scriptedClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	return c.record(prompt)
}

func (c *scriptedClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier, _ *genai.Schema) (string, error) {
	return c.record(prompt)
}

func (c *scriptedClient) GetModel(llm.ModelTier) string { return "scripted" }
func (c *scriptedClient) Close() error                  { return nil }

func reply(text string) func(string) (string, error) {
	return func(string) (string, error) { return text, nil }
}

type fakeExporter struct {
	filename string
	template types.TemplateID
}

func (f *fakeExporter) PDF(_ context.Context, doc *rendering.Document) ([]byte, error) {
	f.template = doc.Template
	return []byte("%PDF"), nil
}

func (f *fakeExporter) ExportPDF(_ context.Context, doc *rendering.Document, filename string) (string, error) {
	f.template = doc.Template
	f.filename = filename
	return "/tmp/" + filename, nil
}

func newSession(t *testing.T, client llm.Client, opts ...Option) (*Session, *kv.Memory) {
	t.Helper()
	backend := kv.NewMemory()
	st := store.New(context.Background(), backend)

	var gateway *assist.Gateway
	if client != nil {
		gateway = assist.New(client)
	}
	s, err := NewSession(st, gateway, opts...)
	require.NoError(t, err)
	return s, backend
}

func TestGenerateSummary_WritesBack(t *testing.T) {
	client := &scriptedClient{respond: reply("Seasoned engineer.")}
	s, backend := newSession(t, client)

	doc, err := s.GenerateSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Seasoned engineer.", doc.Summary)
	assert.Equal(t, "Seasoned engineer.", s.Store().Snapshot().Summary)

	raw, err := backend.Get(context.Background(), store.DraftKey)
	require.NoError(t, err)
	assert.Contains(t, raw, "Seasoned engineer.")
}

func TestFailedGeneration_LeavesDocumentUnchanged(t *testing.T) {
	client := &scriptedClient{respond: func(string) (string, error) {
		return "", errors.New("service unavailable")
	}}
	s, _ := newSession(t, client)
	before := s.Store().Snapshot()

	doc, err := s.GenerateSummary(context.Background())
	var genErr *assist.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, before, doc)
	assert.Equal(t, before, s.Store().Snapshot())
	assert.Equal(t, int32(1), client.calls.Load())

	_, err = s.GenerateDraft(context.Background(), "Engineer")
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, before, s.Store().Snapshot())
}

func TestSuggestSkills_UsesFirstExperienceTitle(t *testing.T) {
	client := &scriptedClient{respond: reply("Go, Rust, C++")}
	s, _ := newSession(t, client)

	doc, err := s.SuggestSkills(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Go, Rust, C++", doc.Skills)
	assert.Equal(t, []string{"Go", "Rust", "C++"}, types.SkillList(doc.Skills))
	assert.Contains(t, client.prompts[0], `"Software Engineer" position`)
}

func TestSuggestSkills_DefaultTitleWithoutExperience(t *testing.T) {
	client := &scriptedClient{respond: reply("Communication")}
	s, _ := newSession(t, client)

	for _, exp := range s.Store().Snapshot().Experience {
		_, err := s.Store().Dispatch(context.Background(), store.DeleteItem{List: types.ListExperience, ID: exp.ID})
		require.NoError(t, err)
	}

	_, err := s.SuggestSkills(context.Background())
	require.NoError(t, err)
	assert.Contains(t, client.prompts[0], `"relevant field" position`)
}

func TestEnhanceExperience(t *testing.T) {
	client := &scriptedClient{respond: reply("- Shipped three products")}
	s, _ := newSession(t, client)
	exp := s.Store().Snapshot().Experience[0]

	doc, err := s.EnhanceExperience(context.Background(), exp.ID)
	require.NoError(t, err)
	assert.Equal(t, "- Shipped three products", doc.Experience[0].Description)
	assert.Equal(t, exp.Company, doc.Experience[0].Company)
	assert.Contains(t, client.prompts[0],
		"Context: Job Title: Software Engineer. Resume Summary: A brief professional summary about yourself..")
}

func TestEnhanceExperience_UnknownID(t *testing.T) {
	client := &scriptedClient{respond: reply("unused")}
	s, _ := newSession(t, client)

	_, err := s.EnhanceExperience(context.Background(), "missing")
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "missing", notFound.ID)
	assert.Equal(t, int32(0), client.calls.Load())
}

func TestEnhanceAllExperience_AppliesEachIndependently(t *testing.T) {
	client := &scriptedClient{respond: func(prompt string) (string, error) {
		if strings.Contains(prompt, "fail me") {
			return "", errors.New("rate limited")
		}
		return "- improved", nil
	}}
	s, _ := newSession(t, client, WithEnhanceLimit(2))
	ctx := context.Background()

	for _, desc := range []string{"one", "fail me", "three"} {
		id, _, err := s.Store().Add(ctx, types.ListExperience)
		require.NoError(t, err)
		_, err = s.Store().Dispatch(ctx, store.UpdateItem{
			List: types.ListExperience, ID: id,
			Patch: store.ExperiencePatch{Description: store.Str(desc)},
		})
		require.NoError(t, err)
	}

	doc, err := s.EnhanceAllExperience(ctx)
	var genErr *assist.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, int32(4), client.calls.Load())

	require.Len(t, doc.Experience, 4)
	assert.Equal(t, "- improved", doc.Experience[0].Description)
	assert.Equal(t, "- improved", doc.Experience[1].Description)
	assert.Equal(t, "fail me", doc.Experience[2].Description)
	assert.Equal(t, "- improved", doc.Experience[3].Description)
}

func TestAnalyzeKeywords(t *testing.T) {
	client := &scriptedClient{respond: reply("Kafka, gRPC")}
	s, _ := newSession(t, client)

	keywords, err := s.AnalyzeKeywords(context.Background(), "Streaming role")
	require.NoError(t, err)
	assert.Equal(t, []string{"Kafka", "gRPC"}, keywords)
}

func TestInputValidation(t *testing.T) {
	client := &scriptedClient{respond: reply("unused")}
	s, _ := newSession(t, client)
	ctx := context.Background()
	var inputErr *InputError

	_, err := s.AnalyzeKeywords(ctx, "   ")
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, MissingJobDescriptionForKeywords, err.Error())

	_, err = s.CoverLetter(ctx, "")
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, MissingJobDescriptionForLetter, err.Error())

	_, err = s.GenerateDraft(ctx, "\t")
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, MissingJobTitle, err.Error())

	assert.Equal(t, int32(0), client.calls.Load())
}

func TestGenerateDraft_ReplacesDocument(t *testing.T) {
	client := &scriptedClient{respond: reply(`{
		"name": "Sam", "email": "s@x.io", "phone": "1", "website": "sam.io",
		"summary": "S", "skills": "Go",
		"education": [],
		"experience": [
			{"company": "A", "title": "T1", "startDate": "1", "endDate": "2", "description": "- a"},
			{"company": "B", "title": "T2", "startDate": "2", "endDate": "3", "description": "- b"}
		],
		"projects": []
	}`)}
	s, backend := newSession(t, client)

	doc, err := s.GenerateDraft(context.Background(), "Engineer")
	require.NoError(t, err)
	assert.Equal(t, "Sam", doc.Name)
	require.Len(t, doc.Experience, 2)
	assert.NotEqual(t, doc.Experience[0].ID, doc.Experience[1].ID)
	assert.Equal(t, []types.Project{}, doc.Projects)

	raw, err := backend.Get(context.Background(), store.DraftKey)
	require.NoError(t, err)
	assert.Contains(t, raw, `"projects":[]`)
}

func TestCoverLetter_NotStored(t *testing.T) {
	client := &scriptedClient{respond: reply("Dear team,")}
	s, _ := newSession(t, client)
	before := s.Store().Snapshot()

	letter, err := s.CoverLetter(context.Background(), "Build APIs")
	require.NoError(t, err)
	assert.Equal(t, "Dear team,", letter)
	assert.Equal(t, before, s.Store().Snapshot())
}

func TestWithoutGateway(t *testing.T) {
	s, _ := newSession(t, nil)

	_, err := s.GenerateSummary(context.Background())
	var genErr *assist.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Contains(t, err.Error(), "not configured")
}

func TestRenderAndExport(t *testing.T) {
	exporter := &fakeExporter{}
	s, _ := newSession(t, nil, WithExporter(exporter))

	doc, err := s.Render("no-such-template")
	require.NoError(t, err)
	assert.Equal(t, types.TemplateClassic, doc.Template)

	location, err := s.Export(context.Background(), types.TemplateModern, "cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cv.pdf", location)
	assert.Equal(t, types.TemplateModern, exporter.template)

	pdf, err := s.PDF(context.Background(), types.TemplateStartup)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf))
}

func TestExport_NoExporter(t *testing.T) {
	s, _ := newSession(t, nil)
	_, err := s.Export(context.Background(), types.TemplateClassic, "")
	assert.Error(t, err)
}
