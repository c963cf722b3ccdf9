package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lawpro-be/internal/constant"
	"lawpro-be/internal/dto"
	"lawpro-be/internal/model"
	"lawpro-be/internal/repository/specification"
	"lawpro-be/internal/service"
	"lawpro-be/pkg/apperr"
	"lawpro-be/pkg/chat/turn"
	"lawpro-be/pkg/events"
	"lawpro-be/pkg/webhook"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const browserKey = "browser-1"

func directory() []model.Lawyer {
	return []model.Lawyer{
		{LawFirm: "Lane Legal Group", Email: "intake@lanelegal.test", County: "Lane", City: "Eugene", State: "Oregon"},
		{LawFirm: "Hoosier Defense", Email: "hello@hoosier.test", County: "Marion", City: "Indianapolis", State: "Indiana"},
	}
}

func reply(text string) *service.AssistantReply {
	return &service.AssistantReply{Text: text}
}

func TestChatService_CreateSession(t *testing.T) {
	f := newChatFixture(t, &mockResponder{}, nil)
	ctx := context.Background()

	res, err := f.chat.CreateSession(ctx, browserKey)
	require.NoError(t, err)
	assert.Equal(t, constant.DefaultSessionTitle, res.Title)
	require.NotNil(t, res.Welcome)
	assert.Equal(t, constant.ChatMessageRoleAssistant, res.Welcome.Role)

	history, err := f.chat.GetChatHistory(ctx, browserKey, res.Id)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, constant.WelcomeMessage, history[0].Content)

	sessions, err := f.chat.GetAllSessions(ctx, browserKey)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	others, err := f.chat.GetAllSessions(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, others)

	_, err = f.chat.GetChatHistory(ctx, "someone-else", res.Id)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestChatService_SendMessage(t *testing.T) {
	tests := []struct {
		name          string
		message       string
		reply         *service.AssistantReply
		wantLookup    bool
		wantIntro     string
		wantLawyers   []string
		wantCaseType  string
		wantLocation  string
		wantSpecialty string
	}{
		{
			name:          "dui in lane county",
			message:       "I had a DUI in Lane County, Oregon",
			reply:         reply("A DUI charge is serious. You must respond quickly."),
			wantLookup:    true,
			wantIntro:     "Here are attorneys who handle DUI Cases in Lane County, Oregon:",
			wantLawyers:   []string{"Lane Legal Group"},
			wantCaseType:  "DUI Cases",
			wantLocation:  "Lane County, Oregon",
			wantSpecialty: "DUI Cases Specialist in Lane County, Oregon",
		},
		{
			name:         "divorce without location",
			message:      "need help with my divorce",
			reply:        reply("Divorce rules vary by state. Where do you live?"),
			wantLookup:   false,
			wantCaseType: "Family Law",
		},
		{
			name:          "allen county falls back to indiana",
			message:       "I need a lawyer in Allen County, Indiana",
			reply:         reply("Let me find someone near you."),
			wantLookup:    true,
			wantIntro:     "I couldn't find attorneys in Allen County, so here are attorneys elsewhere in Indiana:",
			wantLawyers:   []string{"Hoosier Defense"},
			wantLocation:  "Allen County, Indiana",
			wantSpecialty: "Marion, Indiana Legal Specialist",
		},
		{
			name:         "assistant flag with known location",
			message:      "what about Oregon then",
			reply:        &service.AssistantReply{Text: "Oregon has specific rules.", LawyerFlag: true},
			wantLookup:   true,
			wantIntro:    "Here are attorneys who practice in Oregon:",
			wantLawyers:  []string{"Lane Legal Group"},
			wantLocation: "Oregon",
		},
		{
			name:       "assistant flag without any location",
			message:    "please connect me with an attorney",
			reply:      &service.AssistantReply{Text: "Sure.", LawyerFlag: true},
			wantLookup: true,
			wantIntro:  constant.NoLocationSuppliedMessage,
		},
		{
			name:         "no attorneys anywhere in state",
			message:      "I was injured at work in Travis County, Texas",
			reply:        reply("Workplace injuries have strict deadlines."),
			wantLookup:   true,
			wantIntro:    "I couldn't find any attorneys for Travis County, Texas in our directory yet. Try a nearby county or just your state.",
			wantCaseType: "Personal Injury",
			wantLocation: "Travis County, Texas",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responder := &mockResponder{}
			responder.On("Respond", mock.Anything, mock.Anything, mock.Anything, tt.message).Return(tt.reply, nil).Once()

			f := newChatFixture(t, responder, nil, directory()...)
			ctx := context.Background()

			session, err := f.chat.CreateSession(ctx, browserKey)
			require.NoError(t, err)

			res, err := f.chat.SendMessage(ctx, browserKey, &dto.SendMessageRequest{ChatSessionId: session.Id, Content: tt.message})
			require.NoError(t, err)
			responder.AssertExpectations(t)

			assert.Equal(t, string(turn.PhaseIdle), res.Phase)
			require.NotNil(t, res.Sent)
			assert.Equal(t, tt.message, res.Sent.Content)
			assert.True(t, res.Sent.IsUser)

			if !tt.wantLookup {
				require.Len(t, res.Replies, 1)
				assert.Empty(t, res.Replies[0].Lawyers)
			} else {
				require.Len(t, res.Replies, 2)
				lawyerMsg := res.Replies[1]
				assert.Equal(t, tt.wantIntro, lawyerMsg.Content)

				firms := make([]string, 0, len(lawyerMsg.Lawyers))
				for _, l := range lawyerMsg.Lawyers {
					firms = append(firms, l.LawFirm)
				}
				if len(tt.wantLawyers) == 0 {
					assert.Empty(t, firms)
				} else {
					assert.Equal(t, tt.wantLawyers, firms)
				}
				if tt.wantSpecialty != "" {
					assert.Equal(t, tt.wantSpecialty, lawyerMsg.Lawyers[0].Specialty)
				}
			}

			assert.Equal(t, tt.wantCaseType, res.CaseInfo.CaseType)
			assert.Equal(t, tt.wantLocation, res.CaseInfo.Location)

			history, err := f.chat.GetChatHistory(ctx, browserKey, session.Id)
			require.NoError(t, err)
			require.Len(t, history, 2+len(res.Replies))
			assert.Equal(t, res.Sent.Id, history[1].Id)
			for i, r := range res.Replies {
				assert.Equal(t, r.Id, history[2+i].Id)
				assert.Equal(t, r.Content, history[2+i].Content)
			}
			for i := 1; i < len(history); i++ {
				assert.True(t, history[i].CreatedAt.After(history[i-1].CreatedAt) || history[i].CreatedAt.Equal(history[i-1].CreatedAt))
			}

			assert.Contains(t, f.events.types(), events.TypeChatTurnCompleted)
			if tt.wantLookup && len(tt.wantLawyers) > 0 {
				assert.Contains(t, f.events.types(), events.TypeLawyersMatched)
			}

			phase, err := f.chat.GetTurnPhase(ctx, browserKey, session.Id)
			require.NoError(t, err)
			assert.Equal(t, string(turn.PhaseIdle), phase.Phase)
		})
	}
}

func TestChatService_SendMessage_RendersAndStripsReply(t *testing.T) {
	responder := &mockResponder{}
	responder.On("Respond", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(reply("<script>alert(1)</script>Important: keep every letter."), nil)

	f := newChatFixture(t, responder, nil)
	ctx := context.Background()
	session, err := f.chat.CreateSession(ctx, browserKey)
	require.NoError(t, err)

	res, err := f.chat.SendMessage(ctx, browserKey, &dto.SendMessageRequest{ChatSessionId: session.Id, Content: "my landlord kept my deposit"})
	require.NoError(t, err)
	require.Len(t, res.Replies, 1)

	html := res.Replies[0].Content
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "<strong>Important</strong>")
}

func TestChatService_SendMessage_WebhookFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		timeout time.Duration
		want    string
	}{
		{
			name: "status 500",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			timeout: time.Second,
			want:    constant.FailureMessageFor(apperr.KindNetwork),
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(300 * time.Millisecond)
				_, _ = w.Write([]byte(`{"response":"too late"}`))
			},
			timeout: 50 * time.Millisecond,
			want:    constant.FailureMessageFor(apperr.KindNetwork),
		},
		{
			name: "unusable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"unexpected":true}`))
			},
			timeout: time.Second,
			want:    constant.FallbackReply,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			responder := service.NewWebhookResponder(webhook.NewClient(srv.URL, tt.timeout))
			f := newChatFixture(t, responder, nil, directory()...)
			ctx := context.Background()

			session, err := f.chat.CreateSession(ctx, browserKey)
			require.NoError(t, err)

			res, err := f.chat.SendMessage(ctx, browserKey, &dto.SendMessageRequest{
				ChatSessionId: session.Id,
				Content:       "I had a DUI in Lane County, Oregon",
			})
			require.NoError(t, err)

			assert.Equal(t, string(turn.PhaseIdle), res.Phase)
			require.Len(t, res.Replies, 1)
			assert.Equal(t, tt.want, res.Replies[0].Content)
			assert.Empty(t, res.Replies[0].Lawyers)

			history, err := f.chat.GetChatHistory(ctx, browserKey, session.Id)
			require.NoError(t, err)
			assert.Len(t, history, 3)

			phases := make([]string, 0)
			for _, e := range f.notifier.ofType(service.PushTurnPhase) {
				phases = append(phases, e.Data.(dto.TurnPhaseResponse).Phase)
			}
			assert.Equal(t, []string{
				string(turn.PhaseAwaitingAIResponse),
				string(turn.PhaseError),
				string(turn.PhaseIdle),
			}, phases)
		})
	}
}

func TestChatService_SendMessage_TurnInProgress(t *testing.T) {
	responder := &mockResponder{}
	f := newChatFixture(t, responder, nil)
	ctx := context.Background()

	session, err := f.chat.CreateSession(ctx, browserKey)
	require.NoError(t, err)
	require.True(t, f.sessions.AcquireTurn(session.Id.String()))

	_, err = f.chat.SendMessage(ctx, browserKey, &dto.SendMessageRequest{ChatSessionId: session.Id, Content: "hello?"})
	assert.True(t, apperr.Is(err, apperr.KindTurnInProgress))
	responder.AssertNotCalled(t, "Respond", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	count, err := f.uow.NewUnitOfWork(ctx).ChatMessageRepository().Count(ctx, specification.ByChatSessionID{ChatSessionID: session.Id})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestChatService_SendMessage_UnknownSession(t *testing.T) {
	f := newChatFixture(t, &mockResponder{}, nil)

	_, err := f.chat.SendMessage(context.Background(), browserKey, &dto.SendMessageRequest{ChatSessionId: uuid.New(), Content: "hi"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestChatService_SendMessage_TitleOnFirstMessageOnly(t *testing.T) {
	responder := &mockResponder{}
	responder.On("Respond", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(reply("Understood."), nil)

	f := newChatFixture(t, responder, nil)
	ctx := context.Background()
	session, err := f.chat.CreateSession(ctx, browserKey)
	require.NoError(t, err)

	for _, msg := range []string{"my employer has not paid me", "it has been two months"} {
		_, err := f.chat.SendMessage(ctx, browserKey, &dto.SendMessageRequest{ChatSessionId: session.Id, Content: msg})
		require.NoError(t, err)
	}

	require.Len(t, f.titles.requests, 1)
	assert.Equal(t, session.Id, f.titles.requests[0].ChatSessionId)
	assert.Equal(t, "my employer has not paid me", f.titles.requests[0].Message)

	// second turn sees the first exchange, without the welcome message
	calls := responder.Calls
	require.Len(t, calls, 2)
	assert.Empty(t, calls[0].Arguments.Get(2))
	assert.Len(t, calls[1].Arguments.Get(2), 2)
}

func TestChatService_ConfirmCaseInfo(t *testing.T) {
	responder := &mockResponder{}
	responder.On("Respond", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(reply("Noted."), nil)

	f := newChatFixture(t, responder, nil, directory()...)
	ctx := context.Background()
	session, err := f.chat.CreateSession(ctx, browserKey)
	require.NoError(t, err)

	info, err := f.chat.ConfirmCaseInfo(ctx, browserKey, &dto.ConfirmCaseInfoRequest{
		ChatSessionId: session.Id,
		Location:      "Lane County, Oregon",
	})
	require.NoError(t, err)
	assert.True(t, info.Confirmed)
	assert.Equal(t, "Lane County, Oregon", info.Location)

	res, err := f.chat.SendMessage(ctx, browserKey, &dto.SendMessageRequest{
		ChatSessionId: session.Id,
		Content:       "I need a lawyer in Allen County, Indiana for my DUI",
	})
	require.NoError(t, err)
	require.Len(t, res.Replies, 2)
	assert.True(t, strings.HasSuffix(res.Replies[1].Content, "in Lane County, Oregon:"))
	assert.Equal(t, "Lane County, Oregon", res.CaseInfo.Location)

	_, err = f.chat.ConfirmCaseInfo(ctx, browserKey, &dto.ConfirmCaseInfoRequest{ChatSessionId: session.Id, Location: "   "})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
