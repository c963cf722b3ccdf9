package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"lawpro-be/internal/constant"
	"lawpro-be/internal/entity"
	"lawpro-be/internal/repository/specification"
	"lawpro-be/internal/repository/unitofwork"
	"lawpro-be/internal/service"
	"lawpro-be/internal/testutil"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain", raw: "DUI Arrest in Oregon", want: "DUI Arrest in Oregon"},
		{name: "quoted", raw: "  \"Unpaid Wages Dispute\"  ", want: "Unpaid Wages Dispute"},
		{name: "prefixed", raw: "Title: Custody Question", want: "Custody Question"},
		{name: "first line only", raw: "Eviction Notice Help\nThis title reflects...", want: "Eviction Notice Help"},
		{name: "empty", raw: "   ", want: ""},
		{name: "capped", raw: strings.Repeat("a", 150), want: strings.Repeat("a", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.CleanTitle(tt.raw))
		})
	}
}

func TestConsumerService_GeneratesTitle(t *testing.T) {
	tests := []struct {
		name      string
		modelOut  string
		modelErr  error
		wantTitle string
		wantPush  bool
	}{
		{name: "title stored", modelOut: "\"Lane County DUI\"", wantTitle: "Lane County DUI", wantPush: true},
		{name: "model failure keeps default", modelErr: errors.New("boom"), wantTitle: constant.DefaultSessionTitle},
		{name: "empty answer keeps default", modelOut: "  ", wantTitle: constant.DefaultSessionTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			db := testutil.NewTestDB(t)
			uow := unitofwork.NewRepositoryFactory(db)
			session := &entity.ChatSession{
				Id:         uuid.New(),
				BrowserKey: browserKey,
				Title:      constant.DefaultSessionTitle,
				CreatedAt:  time.Now().UTC(),
			}
			require.NoError(t, uow.NewUnitOfWork(ctx).ChatSessionRepository().Create(ctx, session))

			provider := &mockProvider{}
			called := make(chan struct{}, 1)
			provider.On("Chat", mock.Anything, mock.Anything).
				Return(tt.modelOut, tt.modelErr).
				Run(func(args mock.Arguments) { called <- struct{}{} })

			pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
			defer pubSub.Close()

			notifier := &recordingNotifier{}
			consumer := service.NewConsumerService(pubSub, "TITLE_REQUESTED", uow, provider, "", notifier)
			require.NoError(t, consumer.Consume(ctx))

			publisher := service.NewPublisherService("TITLE_REQUESTED", pubSub)
			require.NoError(t, publisher.RequestTitle(ctx, service.TitleRequested{
				ChatSessionId: session.Id,
				BrowserKey:    browserKey,
				Message:       "I had a DUI in Lane County, Oregon",
			}))

			select {
			case <-called:
			case <-time.After(2 * time.Second):
				t.Fatal("title model was not called")
			}

			assert.Eventually(t, func() bool {
				s, err := uow.NewUnitOfWork(ctx).ChatSessionRepository().FindOne(ctx, specification.ByID{ID: session.Id})
				return err == nil && s != nil && s.Title == tt.wantTitle
			}, 2*time.Second, 20*time.Millisecond)

			if tt.wantPush {
				assert.Eventually(t, func() bool {
					return len(notifier.ofType(service.PushSessionTitle)) == 1
				}, 2*time.Second, 20*time.Millisecond)
			} else {
				time.Sleep(50 * time.Millisecond)
				assert.Empty(t, notifier.ofType(service.PushSessionTitle))
			}
		})
	}
}
