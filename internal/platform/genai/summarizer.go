package genai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"neoguard-console-backend/internal/common/logger"
)

const systemInstruction = `You are a moderation assistant for a Telegram community.
Summarize the given chat messages for a community operator: main topics,
notable questions, and anything that looks like spam or abuse. Be concise,
plain text, at most one short paragraph per theme.`

const (
	requestTimeout = 30 * time.Second
	retryDelay     = 2 * time.Second
)

// Summarizer wraps the Gemini API for message-batch summaries.
type Summarizer struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewSummarizer(ctx context.Context, apiKey, modelName string) (*Summarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:     genai.Ptr[float32](0.3),
		MaxOutputTokens: genai.Ptr[int32](1024),
	}

	logger.Info().Str("model", modelName).Msg("gemini client initialized")
	return &Summarizer{client: client, model: model}, nil
}

func (s *Summarizer) Close() error {
	return s.client.Close()
}

// Summarize produces a free-text summary of the messages. One retry after a
// short delay, then the failure is surfaced.
func (s *Summarizer) Summarize(ctx context.Context, messages []string) (string, error) {
	prompt := "Messages:\n" + strings.Join(messages, "\n")

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		resp, err := s.model.GenerateContent(callCtx, genai.Text(prompt))
		cancel()
		if err != nil {
			lastErr = err
			logger.Warn().Err(err).Int("attempt", attempt+1).Msg("gemini request failed")
			continue
		}
		if text := firstText(resp); text != "" {
			return text, nil
		}
		lastErr = fmt.Errorf("empty gemini response")
	}
	return "", lastErr
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(b.String())
}
