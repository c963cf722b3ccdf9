package service

import (
	"context"
	"strings"

	"lawpro-be/internal/constant"
	"lawpro-be/pkg/apperr"
	"lawpro-be/pkg/llm"
	"lawpro-be/pkg/webhook"
)

// AssistantReply is the raw answer of the assistant backend before
// rendering.
type AssistantReply struct {
	Text       string
	LawyerFlag bool
}

// AssistantResponder produces the assistant side of one turn.
type AssistantResponder interface {
	Respond(ctx context.Context, sessionID string, history []llm.Message, message string) (*AssistantReply, error)
}

type llmResponder struct {
	provider llm.LLMProvider
}

// NewLLMResponder answers through a chat-completion model. The model asks
// for the lawyer panel by ending its reply with the show-lawyers marker.
func NewLLMResponder(provider llm.LLMProvider) AssistantResponder {
	return &llmResponder{provider: provider}
}

func (r *llmResponder) Respond(ctx context.Context, sessionID string, history []llm.Message, message string) (*AssistantReply, error) {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: constant.AssistantSystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: message})

	out, err := r.provider.Chat(ctx, messages, llm.WithTemperature(0.4), llm.WithMaxTokens(800))
	if err != nil {
		return nil, err
	}

	text, flagged := stripMarker(out)
	if text == "" {
		return nil, apperr.New(apperr.KindMalformedResponse, "model returned an empty reply")
	}
	return &AssistantReply{Text: text, LawyerFlag: flagged}, nil
}

func stripMarker(s string) (string, bool) {
	if !strings.Contains(s, constant.ShowLawyersMarker) {
		return strings.TrimSpace(s), false
	}
	return strings.TrimSpace(strings.ReplaceAll(s, constant.ShowLawyersMarker, "")), true
}

type webhookResponder struct {
	client *webhook.Client
}

// NewWebhookResponder answers through the automation workflow, which keeps
// its own conversation memory keyed by session id.
func NewWebhookResponder(client *webhook.Client) AssistantResponder {
	return &webhookResponder{client: client}
}

func (r *webhookResponder) Respond(ctx context.Context, sessionID string, _ []llm.Message, message string) (*AssistantReply, error) {
	reply, err := r.client.Send(ctx, message, sessionID)
	if err != nil {
		return nil, err
	}
	return &AssistantReply{Text: reply.ResponseText, LawyerFlag: reply.LawyerFlag}, nil
}
