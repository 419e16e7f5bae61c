package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/oukeidos/glosst/internal/apperrors"
	"google.golang.org/api/option"
)

// DefaultTimeout bounds a single GenerateContent call.
const DefaultTimeout = 120 * time.Second

const systemInstruction = `You are a professional game localization translator.
The user sends a JSON object with "source_language", "target_language" and "texts".
Translate every element of "texts" from the source language to the target language.
Reply with a JSON object {"translations": [...]} holding exactly one string per input, in the same order.
Preserve leading and trailing whitespace, line breaks, placeholders such as {0} or %s, and markup tags.
Never merge, split, drop or reorder elements.`

// Generator sends one batch request to a model.
type Generator interface {
	Generate(ctx context.Context, request RequestData) (*ResponseData, error)
}

// Client handles communication with the Gemini API.
type Client struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

var _ Generator = (*Client)(nil)

// NewClient creates a new Gemini client. A zero timeout selects DefaultTimeout.
func NewClient(ctx context.Context, apiKey, modelName string, timeout time.Duration) (*Client, error) {
	// option.WithHTTPClient would bypass the library's API key header
	// injection, so the timeout is enforced through the context instead.
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, apperrors.Auth(fmt.Errorf("create gemini client: %w", err))
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	return &Client{client: client, model: model, timeout: timeout}, nil
}

// Close closes the underlying genai client.
func (c *Client) Close() error {
	return c.client.Close()
}

// Generate sends a request to Gemini and decodes the translated batch.
func (c *Client) Generate(ctx context.Context, request RequestData) (*ResponseData, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	requestJSON, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(string(requestJSON)))
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, ctx.Err()
		}
		return nil, classifyGeminiError(err)
	}

	text, err := extractResponseText(resp)
	if err != nil {
		return nil, apperrors.Validation(err)
	}
	data, err := decodeResponse(text)
	if err != nil {
		return nil, err
	}
	if resp.UsageMetadata != nil {
		data.Usage = UsageMetadata{
			PromptTokenCount:     int(resp.UsageMetadata.PromptTokenCount),
			CandidatesTokenCount: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokenCount:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return data, nil
}

// decodeResponse accepts the documented object form and falls back to a bare
// array of strings. The raw text is never included in the error.
func decodeResponse(text string) (*ResponseData, error) {
	var data ResponseData
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		var arr []string
		if err2 := json.Unmarshal([]byte(text), &arr); err2 != nil {
			return nil, apperrors.Validation(fmt.Errorf("failed to unmarshal response: %w", err))
		}
		data.Translations = arr
	}
	if data.Translations == nil {
		return nil, apperrors.Validation(fmt.Errorf("response has no translations field"))
	}
	return &data, nil
}

func extractResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("no response received from Gemini")
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
			continue
		}
		var combined string
		for _, part := range candidate.Content.Parts {
			text, ok := part.(genai.Text)
			if !ok {
				continue
			}
			combined += string(text)
		}
		if combined != "" {
			return combined, nil
		}
	}
	return "", fmt.Errorf("no text parts found in Gemini response")
}
