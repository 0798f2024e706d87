package gemini

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"google.golang.org/genai"

	"github.com/malonaz/gemchat/internal/debug"
)

// Replies used in place of an answer when a request fails.
const (
	FallbackReply       = "Sorry, there was an error processing your message."
	FallbackEditedReply = "Sorry, there was an error processing your edited message."
)

// Completer turns a prompt into a reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config of a Client.
type Config struct {
	APIKey string
	// Overrides the API endpoint. Empty means the default.
	BaseURL string
	Model   string
	// Zero means no timeout.
	Timeout time.Duration
	// Optional.
	HTTPClient *http.Client
}

// Client sends single-turn generateContent requests.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewClient instantiates and returns a new client.
func NewClient(ctx context.Context, config Config) (*Client, error) {
	if config.APIKey == "" {
		return nil, errors.New("gemini api key is not set")
	}
	if config.Model == "" {
		return nil, errors.New("gemini model is not set")
	}
	clientConfig := &genai.ClientConfig{
		APIKey:     config.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: config.HTTPClient,
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, errors.Wrap(err, "creating genai client")
	}
	return &Client{client: client, model: config.Model, timeout: config.Timeout}, nil
}

// Complete sends prompt as the only part of a single-turn request and
// returns the text of the first part of the first candidate.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	response, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", errors.Wrapf(err, "generating content with %s", c.model)
	}
	return firstText(response)
}

func firstText(response *genai.GenerateContentResponse) (string, error) {
	if response == nil || len(response.Candidates) == 0 {
		return "", errors.New("response has no candidates")
	}
	candidate := response.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 || candidate.Content.Parts[0] == nil {
		return "", errors.New("first candidate has no parts")
	}
	return candidate.Content.Parts[0].Text, nil
}

// CompleteOrFallback returns the reply to prompt, or fallback if the request
// fails. Failures are logged and never retried.
func CompleteOrFallback(ctx context.Context, completer Completer, prompt, fallback string) string {
	reply, err := completer.Complete(ctx, prompt)
	if err != nil {
		// A cancelled request is not a failure worth reporting.
		if ctx.Err() == nil {
			debug.GetLogger().Error("completion request failed", "error", err)
		}
		return fallback
	}
	return reply
}
