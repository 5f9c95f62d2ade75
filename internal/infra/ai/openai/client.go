package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/bryanwahyu/videomaster/internal/domain/analysis"
)

const (
	maxTokens    = 2048
	defaultModel = "gpt-4o-mini"
	schemaName   = "video_analysis"
)

type Client struct {
	*openai.Client
	Model  string
	hasKey bool
}

// NewClient; baseURL may point at any OpenAI-compatible endpoint.
func NewClient(apiKey, model, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model, hasKey: apiKey != ""}
}

func (c *Client) HasCredential() bool { return c.hasKey }

func (c *Client) Generate(ctx context.Context, p analysis.Prompt) (analysis.Response, error) {
	model := c.Model
	if model == "" {
		model = defaultModel
	}
	if p.WebSearch {
		slog.Warn("web search is not available on the openai analyzer, ignoring", "model", model)
	}

	schema := Definition(p.Schema)
	req := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: &schema,
			},
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.System},
			{Role: openai.ChatMessageRoleUser, Content: p.Instruction},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return analysis.Response{}, fmt.Errorf("%w: %v", analysis.ErrQuotaExceeded, err)
		}
		return analysis.Response{}, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return analysis.Response{}, fmt.Errorf("chat completion returned no choices")
	}

	return analysis.Response{Text: resp.Choices[0].Message.Content}, nil
}

// Definition converts the declared schema into a JSON schema definition.
func Definition(s analysis.Schema) jsonschema.Definition {
	props := make(map[string]jsonschema.Definition, len(s.Fields))
	for _, f := range s.Fields {
		d := jsonschema.Definition{Type: jsonschema.String, Description: f.Description}
		if f.Type == analysis.FieldStringArray {
			d = jsonschema.Definition{
				Type:        jsonschema.Array,
				Description: f.Description,
				Items:       &jsonschema.Definition{Type: jsonschema.String},
			}
		}
		props[f.Name] = d
	}
	return jsonschema.Definition{
		Type:       jsonschema.Object,
		Properties: props,
		Required:   s.RequiredNames(),
	}
}
