package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	domai "github.com/bryanwahyu/creative-qc/internal/domain/ai"
	"github.com/bryanwahyu/creative-qc/internal/infra/ai/prompt"
)

const maxTokens = 4096

type Client struct {
	*openai.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{Client: openai.NewClient(apiKey), Model: model}
}

func (c *Client) Analyze(ctx context.Context, req domai.Request) (*domai.Analysis, error) {
	model := c.Model
	if model == "" {
		model = "gpt-4o"
	}

	meta := prompt.Meta{
		Width:      req.Width,
		Height:     req.Height,
		Format:     req.Format,
		VisualType: req.VisualType,
		UploadYear: req.UploadYear,
	}

	userText := prompt.GetUserPrompt(meta)
	if req.PreserveRegions && len(req.ManualRegions) > 0 {
		userText += "\n\nManually adjusted evaluation regions (percent of canvas):"
		for id, box := range req.ManualRegions {
			userText += fmt.Sprintf("\n- %s: x=%.1f y=%.1f w=%.1f h=%.1f", id, box.X, box.Y, box.Width, box.Height)
		}
	}

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt(meta)},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    req.Image,
							Detail: openai.ImageURLDetailHigh,
						},
					},
					{Type: openai.ChatMessagePartTypeText, Text: userText},
				},
			},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		chatReq.MaxCompletionTokens = maxTokens
	} else {
		chatReq.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, mapAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &domai.UpstreamError{StatusCode: http.StatusBadGateway, Message: "empty completion"}
	}

	return domai.ParseAnalysis(resp.Choices[0].Message.Content)
}

func mapAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return domai.ErrQuotaExceeded
		}
		return &domai.UpstreamError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}
	return fmt.Errorf("failed to create chat completion: %w", err)
}
