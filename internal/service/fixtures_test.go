package service_test

import (
	"context"
	"sync"
	"testing"

	"lawpro-be/internal/model"
	"lawpro-be/internal/pkg/logger"
	"lawpro-be/internal/pkg/mailer"
	"lawpro-be/internal/repository/cache"
	"lawpro-be/internal/repository/memory"
	"lawpro-be/internal/repository/unitofwork"
	"lawpro-be/internal/service"
	"lawpro-be/internal/testutil"
	"lawpro-be/internal/websocket"
	"lawpro-be/pkg/events"
	"lawpro-be/pkg/extract"
	"lawpro-be/pkg/llm"
	"lawpro-be/pkg/render"

	"github.com/stretchr/testify/mock"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

type mockResponder struct {
	mock.Mock
}

func (m *mockResponder) Respond(ctx context.Context, sessionID string, history []llm.Message, message string) (*service.AssistantReply, error) {
	args := m.Called(ctx, sessionID, history, message)
	reply, _ := args.Get(0).(*service.AssistantReply)
	return reply, args.Error(1)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	args := m.Called(ctx, history)
	return args.String(0), args.Error(1)
}

func (m *mockProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type recordingPublisher struct {
	mu     sync.Mutex
	err    error
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []websocket.Event
}

func (n *recordingNotifier) Push(_ string, event websocket.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) ofType(typ string) []websocket.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []websocket.Event
	for _, e := range n.events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

type recordingTitles struct {
	mu       sync.Mutex
	requests []service.TitleRequested
}

func (r *recordingTitles) RequestTitle(_ context.Context, req service.TitleRequested) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	return nil
}

type captureSender struct {
	mu   sync.Mutex
	err  error
	sent int
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.sent += len(m)
	return nil
}

func newMailer(sender *captureSender) mailer.IEmailService {
	return mailer.NewEmailServiceWithSender(sender, "noreply@lawpro.test", "LawPro")
}

type chatFixture struct {
	db       *gorm.DB
	uow      unitofwork.RepositoryFactory
	chat     service.IChatService
	lawyers  service.ILawyerService
	sessions *memory.SessionRepository
	titles   *recordingTitles
	events   *recordingPublisher
	notifier *recordingNotifier
}

func newChatFixture(t *testing.T, responder service.AssistantResponder, lawyerCache cache.LawyerCache, directory ...model.Lawyer) *chatFixture {
	t.Helper()

	db := testutil.NewTestDB(t)
	if len(directory) > 0 {
		testutil.SeedLawyers(t, db, directory...)
	}

	f := &chatFixture{
		db:       db,
		uow:      unitofwork.NewRepositoryFactory(db),
		sessions: memory.NewSessionRepository(),
		titles:   &recordingTitles{},
		events:   &recordingPublisher{},
		notifier: &recordingNotifier{},
	}
	log := logger.NewNopLogger()
	mailer := newMailer(&captureSender{})

	f.lawyers = service.NewLawyerService(f.uow, lawyerCache, mailer, nil, log, 10)
	f.chat = service.NewChatService(
		f.uow,
		responder,
		extract.NewResolver(),
		f.lawyers,
		f.sessions,
		f.titles,
		f.notifier,
		f.events,
		render.NewRenderer(),
		log,
	)
	return f
}
