// Package gemini provides a client for the Google Gemini API
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/nivesha/advisor/internal/common"
	"github.com/nivesha/advisor/internal/interfaces"
)

const DefaultModel = "gemini-1.5-flash"

// chatAck is the canned model turn that anchors the advisor persona before
// the user's message.
const chatAck = "Understood. I am Nivesha. I will analyze the market and the user's portfolio to provide precision investment advice."

// Client implements the GenerativeClient interface
type Client struct {
	client *genai.Client
	model  string
	logger *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client: genaiClient,
		model:  DefaultModel,
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// GenerateContent generates advisory text from a prompt
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug().Str("model", c.model).Msg("Generating content")

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(result)
}

// Chat generates a reply to message. The system turn carries the advisor
// persona and the caller's portfolio context and is injected ahead of the
// user's message, mirroring a chat history of [user(system), model(ack), user].
func (c *Client) Chat(ctx context.Context, system, message string) (string, error) {
	c.logger.Debug().Str("model", c.model).Msg("Generating chat reply")

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: system}}},
		{Role: "model", Parts: []*genai.Part{{Text: chatAck}}},
		{Role: "user", Parts: []*genai.Part{{Text: message}}},
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate chat reply: %w", err)
	}

	return extractTextFromResponse(result)
}

// extractTextFromResponse extracts text from a generate content response
func extractTextFromResponse(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text := ""
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	return text, nil
}

// Ensure Client implements GenerativeClient
var _ interfaces.GenerativeClient = (*Client)(nil)
