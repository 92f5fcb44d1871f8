package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/assist"
	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/contact"
	"github.com/jonathan/resume-builder/internal/kv"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

type stubClient struct {
	mu   sync.Mutex
	text string
	json string
	err  error
}

func (c *stubClient) GenerateContent(context.Context, string, llm.ModelTier) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, c.err
}

func (c *stubClient) GenerateJSON(context.Context, string, llm.ModelTier, *genai.Schema) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.json, c.err
}

func (c *stubClient) GetModel(llm.ModelTier) string { return "stub" }
func (c *stubClient) Close() error                  { return nil }

type stubExporter struct{}

func (stubExporter) PDF(context.Context, *rendering.Document) ([]byte, error) {
	return []byte("%PDF-1.7 stub"), nil
}

func (stubExporter) ExportPDF(context.Context, *rendering.Document, string) (string, error) {
	return "", errors.New("not used")
}

type fixture struct {
	handler http.Handler
	client  *stubClient
	store   *store.Store
	backend *kv.Memory
}

func newFixture(t *testing.T, rl *ratelimit.Config, contactURL string) *fixture {
	t.Helper()
	backend := kv.NewMemory()
	st := store.New(context.Background(), backend)
	client := &stubClient{text: "Generated text."}

	session, err := builder.NewSession(st, assist.New(client), builder.WithExporter(stubExporter{}))
	require.NoError(t, err)

	if rl == nil {
		rl = &ratelimit.Config{Enabled: false}
	}
	srv := New(Config{Port: 0, RateLimit: rl}, session, store.NewThemeStore(backend),
		contact.NewClient(contact.WithEndpoint(contactURL)))
	t.Cleanup(srv.Close)

	return &fixture{handler: srv.Handler(), client: client, store: st, backend: backend}
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeResume(t *testing.T, rec *httptest.ResponseRecorder) types.ResumeData {
	t.Helper()
	var doc types.ResumeData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	return doc
}

func TestHealth(t *testing.T) {
	f := newFixture(t, nil, "")
	rec := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture(t, nil, "")
	rec := f.do(t, http.MethodOptions, "/resume", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestResumeCRUD(t *testing.T) {
	f := newFixture(t, nil, "")

	rec := f.do(t, http.MethodGet, "/resume", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Your Name", decodeResume(t, rec).Name)

	rec = f.do(t, http.MethodPut, "/resume/fields/name", `{"value":"Grace Hopper"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Grace Hopper", decodeResume(t, rec).Name)

	rec = f.do(t, http.MethodGet, "/resume/fields/name", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"value":"Grace Hopper"}`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/resume/fields/salary", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/resume/projects", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var added AddItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	require.Len(t, added.Resume.Projects, 2)
	assert.Equal(t, added.ID, added.Resume.Projects[1].ID)

	rec = f.do(t, http.MethodPatch, "/resume/projects/"+added.ID, `{"name":"Compiler","url":"a0.dev"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := decodeResume(t, rec)
	assert.Equal(t, "Compiler", doc.Projects[1].Name)
	assert.Equal(t, "a0.dev", doc.Projects[1].URL)

	rec = f.do(t, http.MethodDelete, "/resume/projects/"+added.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeResume(t, rec).Projects, 1)

	// missing ids are no-ops
	rec = f.do(t, http.MethodDelete, "/resume/projects/nope", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeResume(t, rec).Projects, 1)

	raw, err := f.backend.Get(context.Background(), store.DraftKey)
	require.NoError(t, err)
	assert.Contains(t, raw, "Grace Hopper")
}

func TestResume_BadRequests(t *testing.T) {
	f := newFixture(t, nil, "")

	tests := []struct {
		method, path, body string
	}{
		{http.MethodPut, "/resume/fields/age", `{"value":"3"}`},
		{http.MethodPost, "/resume/hobbies", ""},
		{http.MethodPatch, "/resume/projects/x", `{"id":"forged"}`},
		{http.MethodPatch, "/resume/education/x", `{"company":"wrong list"}`},
		{http.MethodPut, "/resume", `{"experience":"nope"}`},
		{http.MethodPut, "/resume/fields/name", `not json`},
	}
	for _, tt := range tests {
		rec := f.do(t, tt.method, tt.path, tt.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%s %s", tt.method, tt.path)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	}
}

func TestLoadAndReset(t *testing.T) {
	f := newFixture(t, nil, "")

	rec := f.do(t, http.MethodPut, "/resume", `{"name":"Loaded","experience":[{"company":"A"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := decodeResume(t, rec)
	assert.Equal(t, "Loaded", doc.Name)
	require.Len(t, doc.Experience, 1)
	assert.NotEmpty(t, doc.Experience[0].ID)
	assert.Equal(t, []types.Project{}, doc.Projects)

	rec = f.do(t, http.MethodPost, "/resume/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Your Name", decodeResume(t, rec).Name)
}

func TestTemplatesAndRender(t *testing.T) {
	f := newFixture(t, nil, "")

	rec := f.do(t, http.MethodGet, "/templates", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Templates []string `json:"templates"`
		Default   string   `json:"default"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Templates, 9)
	assert.Equal(t, "classic", body.Default)

	rec = f.do(t, http.MethodGet, "/render/modern", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, rendering.ContentTypeHTML, rec.Header().Get("Content-Type"))
	assert.Equal(t, "modern", rec.Header().Get("X-Resume-Template"))
	assert.Contains(t, rec.Body.String(), `id="`+rendering.PreviewElementID+`"`)

	rec = f.do(t, http.MethodGet, "/render/bogus", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "classic", rec.Header().Get("X-Resume-Template"))

	rec = f.do(t, http.MethodGet, "/render/classic?format=text", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your Name")
	assert.NotContains(t, rec.Body.String(), "<")
}

func TestExport(t *testing.T) {
	f := newFixture(t, nil, "")

	rec := f.do(t, http.MethodPost, "/export/classic?filename=cv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="cv.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestAssistEndpoints(t *testing.T) {
	f := newFixture(t, nil, "")

	rec := f.do(t, http.MethodPost, "/assist/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Generated text.", decodeResume(t, rec).Summary)

	id := f.store.Snapshot().Experience[0].ID
	rec = f.do(t, http.MethodPost, "/assist/experience/"+id+"/enhance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Generated text.", decodeResume(t, rec).Experience[0].Description)

	rec = f.do(t, http.MethodPost, "/assist/experience/unknown/enhance", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	f.client.text = "Kafka, Go"
	rec = f.do(t, http.MethodPost, "/assist/keywords", `{"job_description":"Streaming"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"keywords":["Kafka","Go"]}`, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/assist/cover-letter", `{"job_description":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), builder.MissingJobDescriptionForLetter)

	rec = f.do(t, http.MethodPost, "/assist/draft", `{"job_title":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), builder.MissingJobTitle)
}

func TestAssist_GenerationFailure(t *testing.T) {
	f := newFixture(t, nil, "")
	f.client.err = errors.New("upstream down")
	before := f.store.Snapshot()

	rec := f.do(t, http.MethodPost, "/assist/skills", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, before, f.store.Snapshot())

	f.client.err = nil
	f.client.json = `{"name": "only a name"}`
	rec = f.do(t, http.MethodPost, "/assist/draft", `{"job_title":"Nurse"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "The AI returned an invalid format")
	assert.Equal(t, before, f.store.Snapshot())
}

func TestTheme(t *testing.T) {
	f := newFixture(t, nil, "")

	rec := f.do(t, http.MethodGet, "/theme", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"theme":"dark"}`, rec.Body.String())

	rec = f.do(t, http.MethodPut, "/theme", `{"theme":"light"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/theme", "")
	assert.JSONEq(t, `{"theme":"light"}`, rec.Body.String())

	rec = f.do(t, http.MethodPut, "/theme", `{"theme":"sepia"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContact(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("message") == "reject" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"errors":[{"message":"spam detected"}]}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()
	f := newFixture(t, nil, upstream.URL)

	rec := f.do(t, http.MethodPost, "/contact", `{"name":"Ada","email":"ada@example.com","message":"hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), contact.SuccessMessage)

	rec = f.do(t, http.MethodPost, "/contact", `{"name":"Ada","email":"ada@example.com","message":"reject"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "spam detected")

	rec = f.do(t, http.MethodPost, "/contact", `{"name":"","email":"x","message":"hi"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimit_AssistStrictest(t *testing.T) {
	f := newFixture(t, &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/assist/", Method: "POST", Limit: 2, Window: time.Hour, Burst: 2},
		},
	}, "")

	for i := 0; i < 2; i++ {
		rec := f.do(t, http.MethodPost, "/assist/summary", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := f.do(t, http.MethodPost, "/assist/skills", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "rate_limit_exceeded")

	rec = f.do(t, http.MethodGet, "/resume", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAssistEnhanceAll(t *testing.T) {
	f := newFixture(t, nil, "")
	_, _, err := f.store.Add(context.Background(), types.ListExperience)
	require.NoError(t, err)

	rec := f.do(t, http.MethodPost, "/assist/experience/enhance", "")
	require.Equal(t, http.StatusOK, rec.Code)

	doc := decodeResume(t, rec)
	require.Len(t, doc.Experience, 2)
	for _, e := range doc.Experience {
		assert.Equal(t, "Generated text.", e.Description)
	}
}
