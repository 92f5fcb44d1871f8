package contact

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMessage() Message {
	return Message{Name: "Ada", Email: "ada@example.com", Message: "Hello there"}
}

func TestSubmit_Success(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		got = map[string]string{
			"name":     r.FormValue("name"),
			"_replyto": r.FormValue("_replyto"),
			"message":  r.FormValue("message"),
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	c := NewClient(WithEndpoint(server.URL))
	msg := validMessage()
	msg.Name = "  Ada  "
	require.NoError(t, c.Submit(context.Background(), msg))

	assert.Equal(t, map[string]string{
		"name":     "Ada",
		"_replyto": "ada@example.com",
		"message":  "Hello there",
	}, got)
}

func TestSubmit_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "errors joined",
			body:    `{"errors":[{"message":"email is invalid"},{"message":"message is too short"}]}`,
			message: "email is invalid, message is too short",
		},
		{
			name:    "no errors key",
			body:    `{"error":"nope"}`,
			message: GenericErrorMessage,
		},
		{
			name:    "array body",
			body:    `[]`,
			message: GenericErrorMessage,
		},
		{
			name:    "string body",
			body:    `"rejected"`,
			message: GenericErrorMessage,
		},
		{
			name:    "null body",
			body:    `null`,
			message: GenericErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := NewClient(WithEndpoint(server.URL)).Submit(context.Background(), validMessage())

			var subErr *SubmissionError
			require.True(t, errors.As(err, &subErr))
			assert.Equal(t, http.StatusUnprocessableEntity, subErr.StatusCode)
			assert.Equal(t, tt.message, subErr.Error())
		})
	}
}

func TestSubmit_UnreadableRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	err := NewClient(WithEndpoint(server.URL)).Submit(context.Background(), validMessage())
	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))
}

func TestSubmit_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	err := NewClient(WithEndpoint(url)).Submit(context.Background(), validMessage())

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Contains(t, err.Error(), NetworkErrorMessage)
}

func TestSubmit_InvalidInput(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	defer server.Close()
	c := NewClient(WithEndpoint(server.URL))

	for _, msg := range []Message{
		{Email: "a@b.co", Message: "hi"},
		{Name: "A", Email: "not-an-email", Message: "hi"},
		{Name: "A", Email: "a@b.co", Message: "   "},
	} {
		err := c.Submit(context.Background(), msg)
		var inputErr *InputError
		assert.True(t, errors.As(err, &inputErr))
	}
	assert.False(t, called)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(WithEndpoint(""))
	assert.Equal(t, DefaultEndpoint, c.endpoint)
}
