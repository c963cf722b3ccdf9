package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"unicode/utf8"

	"lawpro-be/internal/constant"
	"lawpro-be/internal/repository/specification"
	"lawpro-be/internal/repository/unitofwork"
	"lawpro-be/internal/websocket"
	"lawpro-be/pkg/llm"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const maxTitleLength = 100

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	provider   llm.LLMProvider
	titleModel string
	notifier   Notifier
}

// NewConsumerService handles TitleRequested jobs. titleModel may be empty to
// use the provider default; notifier may be nil.
func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	provider llm.LLMProvider,
	titleModel string,
	notifier Notifier,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		provider:   provider,
		titleModel: titleModel,
		notifier:   notifier,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage always acks: a title is best effort and the session keeps
// its default title on any failure.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload TitleRequested
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal title request: %v", err)
		return
	}

	log.Printf("[INFO] Generating title for session %s", payload.ChatSessionId)

	if err := cs.generateTitle(ctx, payload); err != nil {
		log.Printf("[WARN] Keeping default title for session %s: %v", payload.ChatSessionId, err)
		return
	}
}

func (cs *consumerService) generateTitle(ctx context.Context, payload TitleRequested) error {
	opts := []llm.Option{llm.WithTemperature(0.3), llm.WithMaxTokens(100)}
	if cs.titleModel != "" {
		opts = append(opts, llm.WithModel(cs.titleModel))
	}

	raw, err := cs.provider.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: constant.TitlePrompt},
		{Role: llm.RoleUser, Content: payload.Message},
	}, opts...)
	if err != nil {
		return err
	}

	title := CleanTitle(raw)
	if title == "" {
		log.Printf("[WARN] Title model returned nothing for session %s", payload.ChatSessionId)
		return nil
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: payload.ChatSessionId})
	if err != nil {
		return err
	}
	if session == nil {
		log.Printf("[WARN] Session %s disappeared before its title was ready", payload.ChatSessionId)
		return nil
	}
	if session.Title != constant.DefaultSessionTitle {
		return nil
	}

	session.Title = title
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		return err
	}

	if cs.notifier != nil {
		cs.notifier.Push(session.BrowserKey, websocket.Event{
			Type:      PushSessionTitle,
			SessionID: session.Id.String(),
			Data:      map[string]string{"title": title},
		})
	}

	log.Printf("[SUCCESS] Session %s titled %q", session.Id, title)
	return nil
}

// CleanTitle trims quotes and a "Title:" prefix from a model answer and keeps
// the first line, capped at 100 characters.
func CleanTitle(raw string) string {
	title := strings.TrimSpace(raw)
	if i := strings.IndexByte(title, '\n'); i >= 0 {
		title = strings.TrimSpace(title[:i])
	}
	if len(title) > 6 && strings.EqualFold(title[:6], "title:") {
		title = strings.TrimSpace(title[6:])
	}
	title = strings.Trim(title, "\"'`*")
	title = strings.TrimSpace(title)

	if utf8.RuneCountInString(title) > maxTitleLength {
		title = strings.TrimSpace(string([]rune(title)[:maxTitleLength]))
	}
	return title
}
