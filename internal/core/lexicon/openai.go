package lexicon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"mcq-service/config"
	"mcq-service/internal/core/nlp"
	"mcq-service/pkg/logger"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float32        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type sensesPayload struct {
	Senses []nlp.Sense `json:"senses"`
}

const systemPrompt = `You are a WordNet-style English thesaurus. For the given noun, list its noun senses, most common first.
For each sense give "synonyms" (the lemma names of that sense, including the noun itself) and "hypernyms"
(lemma names of the senses exactly one level more general). Use underscores for multi-word names.
Reply with JSON only: {"senses":[{"synonyms":[...],"hypernyms":[...]}]}. Reply {"senses":[]} for unknown words.`

// OpenAI asks a chat model for WordNet-like noun senses.
type OpenAI struct {
	client openai.Client
	model  string
}

func NewOpenAI(apiKey, model string, opts ...option.RequestOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("missing openai key")
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	return &OpenAI{client: openai.NewClient(opts...), model: model}, nil
}

func (l *OpenAI) LookupNoun(ctx context.Context, word string) ([]nlp.Sense, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil, nil
	}
	req := chatRequest{
		Model:          l.model,
		Temperature:    0,
		MaxTokens:      512,
		ResponseFormat: responseFormat{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Noun: " + word},
		},
	}
	var out chatResponse
	if err := l.client.Post(ctx, "/chat/completions", req, &out); err != nil {
		logger.Error(err, "%v: chat completion failed for %q", config.ModuleLexicon, word)
		return nil, err
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}

	var payload sensesPayload
	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("decode senses for %q: %w", word, err)
	}
	logger.WithFields(map[string]interface{}{
		"word":   word,
		"senses": len(payload.Senses),
	}).Debug("lexicon: openai lookup done")
	return payload.Senses, nil
}
