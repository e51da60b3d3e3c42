package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/mnemolabs/mnemo/internal/config"
	"github.com/mnemolabs/mnemo/pkg/memory"
)

const systemPrompt = "You condense chat transcripts. Write a summary that preserves " +
	"the participants' goals, decisions and open questions. Answer with the summary only."

// Service generates chat summaries with an LLM chain.
type Service struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the summarization chain against the configured model.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(systemPrompt),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile summary chain: %w", err)
	}

	return &Service{chain: runnable}, nil
}

// Summarize produces a condensed summary of the given transcript.
func (s *Service) Summarize(ctx context.Context, messages []memory.ChatMessage) (string, error) {
	input := map[string]any{
		"history": buildHistory(messages),
		"query":   "Summarize the conversation above in a few sentences.",
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run summary chain: %w", err)
	}

	return strings.TrimSpace(response.Content), nil
}

func buildHistory(messages []memory.ChatMessage) []*schema.Message {
	history := make([]*schema.Message, 0, len(messages))
	for _, message := range messages {
		switch message.Role {
		case memory.RoleAssistant:
			history = append(history, schema.AssistantMessage(message.Content, nil))
		case memory.RoleSystem:
			history = append(history, schema.SystemMessage(message.Content))
		default:
			history = append(history, schema.UserMessage(message.Content))
		}
	}
	return history
}
