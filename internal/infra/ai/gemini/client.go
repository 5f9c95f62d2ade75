package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/bryanwahyu/videomaster/internal/domain/analysis"
)

const defaultModel = "gemini-2.5-flash"

// Client talks to the Gemini API. A Client built without a key reports no
// credential and never dials out.
type Client struct {
	client *genai.Client
	Model  string
}

func NewClient(ctx context.Context, apiKey, model, baseURL string) (*Client, error) {
	c := &Client{Model: model}
	if apiKey == "" {
		return c, nil
	}
	cfg := &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	c.client = cli
	return c, nil
}

func (c *Client) HasCredential() bool { return c.client != nil }

func (c *Client) Generate(ctx context.Context, p analysis.Prompt) (analysis.Response, error) {
	if c.client == nil {
		return analysis.Response{}, errors.New("gemini client has no api key")
	}
	model := c.Model
	if model == "" {
		model = defaultModel
	}

	cfg := &genai.GenerateContentConfig{}
	if p.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(p.System, genai.RoleUser)
	}
	// JSON mode and the search tool cannot be combined
	if p.WebSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	} else {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = Schema(p.Schema)
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(p.Instruction), cfg)
	if err != nil {
		if isQuota(err) {
			return analysis.Response{}, fmt.Errorf("%w: %v", analysis.ErrQuotaExceeded, err)
		}
		return analysis.Response{}, fmt.Errorf("generate content: %w", err)
	}

	return analysis.Response{Text: resp.Text(), Citations: citations(resp)}, nil
}

func isQuota(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code == http.StatusTooManyRequests
	}
	return false
}

// citations collects web grounding chunks of the first candidate.
func citations(resp *genai.GenerateContentResponse) []analysis.Citation {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return nil
	}
	var out []analysis.Citation
	for _, ch := range meta.GroundingChunks {
		if ch == nil || ch.Web == nil || ch.Web.URI == "" {
			continue
		}
		out = append(out, analysis.Citation{Label: ch.Web.Title, URI: ch.Web.URI})
	}
	return out
}

// Schema converts the declared schema into the genai representation.
func Schema(s analysis.Schema) *genai.Schema {
	props := make(map[string]*genai.Schema, len(s.Fields))
	order := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		sc := &genai.Schema{Type: genai.TypeString, Description: f.Description}
		if f.Type == analysis.FieldStringArray {
			sc = &genai.Schema{
				Type:        genai.TypeArray,
				Description: f.Description,
				Items:       &genai.Schema{Type: genai.TypeString},
			}
		}
		props[f.Name] = sc
		order = append(order, f.Name)
	}
	return &genai.Schema{
		Type:             genai.TypeObject,
		Properties:       props,
		Required:         s.RequiredNames(),
		PropertyOrdering: order,
	}
}
