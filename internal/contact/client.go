package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/jonathan/resume-builder/internal/logger"
)

// DefaultEndpoint is the hosted form the contact page posts to
const DefaultEndpoint = "https://formspree.io/f/xkgkwqvg"

// DefaultTimeout bounds a single submission
const DefaultTimeout = 15 * time.Second

var validate = validator.New()

// Message is one contact form submission.
type Message struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Validate trims the fields and checks them.
func (m *Message) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Message = strings.TrimSpace(m.Message)
	return validate.Struct(m)
}

// Client posts contact messages to a form endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithEndpoint overrides the form endpoint.
func WithEndpoint(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.endpoint = url
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Client for DefaultEndpoint unless overridden.
func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        logger.WithComponent("contact"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorResponse is the body the endpoint sends on rejection
type errorResponse struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Submit sends msg as multipart form data with fields name, _replyto and message.
func (c *Client) Submit(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return &InputError{Message: "invalid contact message", Cause: err}
	}

	body, contentType, err := encodeForm(msg)
	if err != nil {
		return &InputError{Message: "failed to encode form", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return &NetworkError{Cause: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("endpoint", c.endpoint).Msg("Contact submission failed")
		return &NetworkError{Cause: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.log.Info().Int("status", resp.StatusCode).Msg("Contact message sent")
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Cause: err}
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return &NetworkError{Cause: fmt.Errorf("unreadable response (status %d): %w", resp.StatusCode, err)}
	}

	// any JSON body counts as a rejection; only an object with "errors" carries messages
	subErr := &SubmissionError{StatusCode: resp.StatusCode, Message: GenericErrorMessage}
	if obj, ok := decoded.(map[string]any); ok && obj["errors"] != nil {
		var parsed errorResponse
		if err := json.Unmarshal(raw, &parsed); err == nil {
			messages := make([]string, 0, len(parsed.Errors))
			for _, e := range parsed.Errors {
				messages = append(messages, e.Message)
			}
			subErr.Message = strings.Join(messages, ", ")
		}
	}

	c.log.Warn().Int("status", resp.StatusCode).Str("message", subErr.Message).Msg("Contact submission rejected")
	return subErr
}

func encodeForm(msg Message) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := [][2]string{
		{"name", msg.Name},
		{"_replyto", msg.Email},
		{"message", msg.Message},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
