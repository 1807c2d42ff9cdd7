// Package ai wraps the chat model behind the one call the rest of the
// system needs: turning a sentence with a blank in it into a question.
package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/docufill/backend/internal/config"
)

const phrasingSystemPrompt = `You are a helpful assistant that formats questions for a legal document.
You will be given a sentence from a legal document which contains a blank space to fill response.
You have to output a question that can be used to fill the blank space.
You have to make sure that the question is clear and concise and that it is in the correct format, correct language, tone, style and format.`

// Service phrases fill-in questions through the configured chat model.
type Service struct {
	chatModel model.ChatModel
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService builds the phrasing chain from the configured model.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(phrasingSystemPrompt),
		schema.UserMessage("{sentence}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile phrasing chain: %w", err)
	}

	return &Service{chatModel: chatModel, chain: runnable}, nil
}

// PhraseQuestion turns one sentence containing a blank marker into a
// question a user can answer to fill that blank.
func (s *Service) PhraseQuestion(ctx context.Context, sentence string) (string, error) {
	response, err := s.chain.Invoke(ctx, map[string]any{"sentence": sentence})
	if err != nil {
		return "", fmt.Errorf("failed to run phrasing chain: %w", err)
	}

	question := strings.TrimSpace(response.Content)
	log.Printf("[ai] phrased question, sentence_len=%d question_len=%d", len(sentence), len(question))
	return question, nil
}
