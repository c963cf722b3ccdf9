package implementation_test

import (
	"context"
	"testing"
	"time"

	"lawpro-be/internal/entity"
	"lawpro-be/internal/repository/implementation"
	"lawpro-be/internal/repository/specification"
	"lawpro-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSessionRepository_CreateFindUpdate(t *testing.T) {
	ctx := context.Background()
	repo := implementation.NewChatSessionRepository(testutil.NewTestDB(t))

	session := &entity.ChatSession{Id: uuid.New(), BrowserKey: "bk-1", Title: "New Legal Inquiry"}
	require.NoError(t, repo.Create(ctx, session))
	require.NoError(t, repo.Create(ctx, &entity.ChatSession{Id: uuid.New(), BrowserKey: "bk-2", Title: "Other"}))

	found, err := repo.FindOne(ctx, specification.ByID{ID: session.Id}, specification.OwnedByBrowser{BrowserKey: "bk-1"})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "New Legal Inquiry", found.Title)

	missing, err := repo.FindOne(ctx, specification.ByID{ID: session.Id}, specification.OwnedByBrowser{BrowserKey: "bk-2"})
	require.NoError(t, err)
	assert.Nil(t, missing)

	found.Title = "DUI Arrest in Oregon"
	require.NoError(t, repo.Update(ctx, found))

	all, err := repo.FindAll(ctx, specification.OwnedByBrowser{BrowserKey: "bk-1"})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "DUI Arrest in Oregon", all[0].Title)
}

func TestChatMessageRepository_ReloadKeepsOrderAndContent(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	sessions := implementation.NewChatSessionRepository(db)
	messages := implementation.NewChatMessageRepository(db)

	session := &entity.ChatSession{Id: uuid.New(), BrowserKey: "bk", Title: "t"}
	require.NoError(t, sessions.Create(ctx, session))

	base := time.Now().UTC().Truncate(time.Millisecond)
	written := []*entity.ChatMessage{
		{Id: uuid.New(), ChatSessionId: session.Id, Role: "user", Content: "I had a DUI in Lane County, Oregon", CreatedAt: base,
			Attachment: &entity.Attachment{FileName: "ticket.pdf", FileSize: 2048}},
		{Id: uuid.New(), ChatSessionId: session.Id, Role: "assistant", Content: "<p>Here is what to do.</p>", CreatedAt: base.Add(time.Millisecond)},
		{Id: uuid.New(), ChatSessionId: session.Id, Role: "assistant", Content: "Here are lawyers", CreatedAt: base.Add(2 * time.Millisecond),
			Lawyers: []entity.LawyerProfile{{
				Lawyer:        entity.Lawyer{Id: 7, LawFirm: "Smith & Jones", County: "Lane", State: "Oregon"},
				Name:          "Smith",
				Specialty:     "DUI Cases Specialist in Lane County, Oregon",
				Rating:        4.7,
				PracticeAreas: []string{"DUI Cases", "Legal Consultation"},
			}}},
	}
	// insert out of order to prove the reload sorts by creation time
	for _, i := range []int{2, 0, 1} {
		require.NoError(t, messages.Create(ctx, written[i]))
	}

	reloaded, err := messages.FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: session.Id},
		specification.OrderBy{Field: "created_at"},
	)
	require.NoError(t, err)
	require.Len(t, reloaded, 3)

	for i, msg := range reloaded {
		assert.Equal(t, written[i].Id, msg.Id)
		assert.Equal(t, written[i].Content, msg.Content)
		assert.Equal(t, written[i].Role, msg.Role)
	}

	require.NotNil(t, reloaded[0].Attachment)
	assert.Equal(t, "ticket.pdf", reloaded[0].Attachment.FileName)
	assert.Equal(t, int64(2048), reloaded[0].Attachment.FileSize)
	assert.Nil(t, reloaded[1].Attachment)
	assert.Empty(t, reloaded[1].Lawyers)

	require.Len(t, reloaded[2].Lawyers, 1)
	assert.Equal(t, "Smith & Jones", reloaded[2].Lawyers[0].LawFirm)
	assert.Equal(t, []string{"DUI Cases", "Legal Consultation"}, reloaded[2].Lawyers[0].PracticeAreas)

	count, err := messages.Count(ctx, specification.ByChatSessionID{ChatSessionID: session.Id}, specification.ByRole{Role: "assistant"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
