package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// TitleRequested is the job asking for a session title.
type TitleRequested struct {
	ChatSessionId uuid.UUID `json:"chat_session_id"`
	BrowserKey    string    `json:"browser_key"`
	Message       string    `json:"message"`
}

type IPublisherService interface {
	RequestTitle(ctx context.Context, req TitleRequested) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (ps *publisherService) RequestTitle(ctx context.Context, req TitleRequested) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return ps.publisher.Publish(ps.topicName, msg)
}
