package mapper

import (
	"encoding/json"
	"time"

	"lawpro-be/internal/entity"
	"lawpro-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct {
	lawyers *LawyerMapper
}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{lawyers: NewLawyerMapper()}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatSession{
		Id:         s.Id,
		BrowserKey: s.BrowserKey,
		Title:      s.Title,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.ChatSession{
		Id:         s.Id,
		BrowserKey: s.BrowserKey,
		Title:      s.Title,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

// Message Mappers

// ChatMessageToEntity ignores undecodable JSON columns; the message text is
// still returned.
func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	var attachment *entity.Attachment
	if len(msg.Attachment) > 0 {
		var snap model.AttachmentSnapshot
		if err := json.Unmarshal(msg.Attachment, &snap); err == nil && snap.FileName != "" {
			attachment = &entity.Attachment{FileName: snap.FileName, FileSize: snap.FileSize}
		}
	}

	var lawyers []entity.LawyerProfile
	if len(msg.Lawyers) > 0 {
		var snaps []model.LawyerSnapshot
		if err := json.Unmarshal(msg.Lawyers, &snaps); err == nil {
			lawyers = make([]entity.LawyerProfile, 0, len(snaps))
			for i := range snaps {
				lawyers = append(lawyers, m.lawyers.SnapshotToProfile(&snaps[i]))
			}
		}
	}

	return &entity.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Content:       msg.Content,
		Role:          msg.Role,
		Attachment:    attachment,
		Lawyers:       lawyers,
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) (*model.ChatMessage, error) {
	if msg == nil {
		return nil, nil
	}

	out := &model.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Content:       msg.Content,
		Role:          msg.Role,
		CreatedAt:     msg.CreatedAt,
	}

	if msg.Attachment != nil {
		raw, err := json.Marshal(model.AttachmentSnapshot{
			FileName: msg.Attachment.FileName,
			FileSize: msg.Attachment.FileSize,
		})
		if err != nil {
			return nil, err
		}
		out.Attachment = datatypes.JSON(raw)
	}

	if len(msg.Lawyers) > 0 {
		snaps := make([]model.LawyerSnapshot, 0, len(msg.Lawyers))
		for i := range msg.Lawyers {
			snaps = append(snaps, m.lawyers.ProfileToSnapshot(&msg.Lawyers[i]))
		}
		raw, err := json.Marshal(snaps)
		if err != nil {
			return nil, err
		}
		out.Lawyers = datatypes.JSON(raw)
	}

	return out, nil
}

func (m *ChatMapper) ChatMessagesToEntities(msgs []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ChatMessageToEntity(msg)
	}
	return entities
}
