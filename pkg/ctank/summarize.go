package ctank

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

/*
NARRATIVE REPORT GENERATOR

AN OPAQUE TEXT-COMPLETION SERVICE: IT CONSUMES A FORMATTED PROMPT CONTEXT
AND RETURNS NATURAL-LANGUAGE TEXT. PROVIDER REQUEST SHAPES STAY BEHIND
THIS INTERFACE SO TESTS CAN SWAP IN A STUB
*/
type Summarizer interface {
	Summarize(ctx context.Context, promptContext string) (string, error)
}

const reportSystemPrompt = `You are a water-treatment plant chemical inventory analyst.
You receive a plain-text snapshot of chemical tank levels, consumption statistics and supply contracts.
Write a short operational report in clear prose: overall inventory state, tanks below their safe minimum,
tanks consuming faster than their target daily usage, and any supply contracts worth renegotiating.
Do not invent numbers that are not in the snapshot.`

type OpenAISummarizer struct {
	client openai.Client
	model  openai.ChatModel
}

func NewOpenAISummarizer(apiKey, model string) (*OpenAISummarizer, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key not configured")
	}
	return &OpenAISummarizer{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  openai.ChatModel(model),
	}, nil
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, promptContext string) (string, error) {

	chat, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(reportSystemPrompt),
			openai.UserMessage(promptContext),
		},
		Model: s.model,
	})
	if err != nil {
		return "", fmt.Errorf("error calling OpenAI API: %w", err)
	}

	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return "", errors.New("received empty response from OpenAI")
	}

	return chat.Choices[0].Message.Content, nil
}
