package translator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

type openAIChatTranslator struct {
	client *openai.Client
	model  string
}

// NewOpenAIChatTranslator translates through a chat completion. We ask for
// the bare translation and trim whatever whitespace the model pads around it.
func NewOpenAIChatTranslator(client *openai.Client, model string) Translator {
	return &openAIChatTranslator{client: client, model: model}
}

func (o *openAIChatTranslator) Translate(ctx context.Context, req Request) (Result, error) {
	prompt := fmt.Sprintf("Translate the following text to %s:\n\n%s\n\nReturn only the translation.", req.Target, req.Text)

	chatRequest := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	}
	log.Info().Str("model", chatRequest.Model).Str("target", req.Target).Int("text_length", len(req.Text)).Msg("executeChatRequest")

	startTime := time.Now()
	response, err := o.client.CreateChatCompletion(ctx, chatRequest)
	if err != nil {
		return Result{}, errors.Wrapf(err, "chat completion failed for target %s", req.Target)
	}
	log.Debug().Dur("request_time", time.Since(startTime)).Int("choices", len(response.Choices)).Msg("chat completion done")

	if len(response.Choices) == 0 {
		return Result{}, errors.Errorf("chat completion returned no choices for model %s", o.model)
	}

	return Result{
		Text:     strings.TrimSpace(response.Choices[0].Message.Content),
		Provider: ProviderLLM,
	}, nil
}
