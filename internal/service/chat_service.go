package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lawpro-be/internal/constant"
	"lawpro-be/internal/dto"
	"lawpro-be/internal/entity"
	"lawpro-be/internal/pkg/logger"
	"lawpro-be/internal/repository/memory"
	"lawpro-be/internal/repository/specification"
	"lawpro-be/internal/repository/unitofwork"
	"lawpro-be/internal/websocket"
	"lawpro-be/pkg/apperr"
	"lawpro-be/pkg/chat/turn"
	"lawpro-be/pkg/events"
	"lawpro-be/pkg/extract"
	"lawpro-be/pkg/llm"
	"lawpro-be/pkg/render"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Websocket event types.
const (
	PushTurnPhase    = "turn_phase"
	PushChatMessage  = "chat_message"
	PushSessionTitle = "session_title"
)

// Notifier pushes events to the open tabs of a browser.
type Notifier interface {
	Push(browserKey string, event websocket.Event)
}

type IChatService interface {
	CreateSession(ctx context.Context, browserKey string) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context, browserKey string) ([]*dto.GetAllSessionsResponse, error)
	GetChatHistory(ctx context.Context, browserKey string, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error)
	SendMessage(ctx context.Context, browserKey string, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetCaseInfo(ctx context.Context, browserKey string, sessionId uuid.UUID) (*dto.CaseInfoResponse, error)
	ConfirmCaseInfo(ctx context.Context, browserKey string, req *dto.ConfirmCaseInfoRequest) (*dto.CaseInfoResponse, error)
	GetTurnPhase(ctx context.Context, browserKey string, sessionId uuid.UUID) (*dto.TurnPhaseResponse, error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	responder  AssistantResponder
	resolver   *extract.Resolver
	lawyers    ILawyerService
	sessions   *memory.SessionRepository
	titles     IPublisherService
	notifier   Notifier
	publisher  events.Publisher
	renderer   *render.Renderer
	logger     logger.ILogger
	now        func() time.Time
}

// NewChatService wires the orchestrator. titles, notifier and publisher may
// be nil.
func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	responder AssistantResponder,
	resolver *extract.Resolver,
	lawyerService ILawyerService,
	sessions *memory.SessionRepository,
	titles IPublisherService,
	notifier Notifier,
	publisher events.Publisher,
	renderer *render.Renderer,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		responder:  responder,
		resolver:   resolver,
		lawyers:    lawyerService,
		sessions:   sessions,
		titles:     titles,
		notifier:   notifier,
		publisher:  publisher,
		renderer:   renderer,
		logger:     log,
		now:        time.Now,
	}
}

func (cs *chatService) CreateSession(ctx context.Context, browserKey string) (*dto.CreateSessionResponse, error) {
	now := cs.now().UTC().Truncate(time.Microsecond)

	session := &entity.ChatSession{
		Id:         uuid.New(),
		BrowserKey: browserKey,
		Title:      constant.DefaultSessionTitle,
		CreatedAt:  now,
	}
	welcome := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Content:       constant.WelcomeMessage,
		Role:          constant.ChatMessageRoleAssistant,
		CreatedAt:     now,
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperr.Persistence(err, "failed to begin transaction")
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, apperr.Persistence(err, "failed to create chat session")
	}
	if err := uow.ChatMessageRepository().Create(ctx, welcome); err != nil {
		return nil, apperr.Persistence(err, "failed to create welcome message")
	}
	if err := uow.Commit(); err != nil {
		return nil, apperr.Persistence(err, "failed to commit chat session")
	}

	cs.logger.Info("CHAT", "Chat session created", map[string]interface{}{"session_id": session.Id.String()})

	return &dto.CreateSessionResponse{
		Id:      session.Id,
		Title:   session.Title,
		Welcome: toMessageResponse(welcome),
	}, nil
}

func (cs *chatService) GetAllSessions(ctx context.Context, browserKey string) ([]*dto.GetAllSessionsResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.OwnedByBrowser{BrowserKey: browserKey},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperr.Persistence(err, "failed to list chat sessions")
	}

	res := make([]*dto.GetAllSessionsResponse, 0, len(sessions))
	for _, s := range sessions {
		res = append(res, &dto.GetAllSessionsResponse{
			Id:        s.Id,
			Title:     s.Title,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return res, nil
}

func (cs *chatService) GetChatHistory(ctx context.Context, browserKey string, sessionId uuid.UUID) ([]*dto.ChatMessageResponse, error) {
	session, err := cs.findSession(ctx, browserKey, sessionId)
	if err != nil {
		return nil, err
	}

	messages, err := cs.loadMessages(ctx, session.Id)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		res = append(res, toMessageResponse(m))
	}
	return res, nil
}

func (cs *chatService) GetCaseInfo(ctx context.Context, browserKey string, sessionId uuid.UUID) (*dto.CaseInfoResponse, error) {
	session, err := cs.findSession(ctx, browserKey, sessionId)
	if err != nil {
		return nil, err
	}
	known, _ := cs.sessions.GetCaseInfo(session.Id.String())
	return toCaseInfoResponse(known), nil
}

// ConfirmCaseInfo pins the location for the rest of the session. Fresh
// extraction no longer overrides it.
func (cs *chatService) ConfirmCaseInfo(ctx context.Context, browserKey string, req *dto.ConfirmCaseInfoRequest) (*dto.CaseInfoResponse, error) {
	session, err := cs.findSession(ctx, browserKey, req.ChatSessionId)
	if err != nil {
		return nil, err
	}

	loc := extract.ParseLocation(req.Location)
	if loc.IsZero() {
		return nil, apperr.New(apperr.KindValidation, "location could not be understood")
	}

	sid := session.Id.String()
	known, _ := cs.sessions.GetCaseInfo(sid)
	known.Location = loc
	known.Confirmed = true
	if ct := strings.TrimSpace(req.CaseType); ct != "" {
		known.CaseType = ct
	}
	cs.sessions.SaveCaseInfo(sid, known)

	cs.logger.Info("CHAT", "Case info confirmed", map[string]interface{}{
		"session_id": sid,
		"location":   loc.String(),
		"case_type":  known.CaseType,
	})

	return toCaseInfoResponse(known), nil
}

func (cs *chatService) GetTurnPhase(ctx context.Context, browserKey string, sessionId uuid.UUID) (*dto.TurnPhaseResponse, error) {
	session, err := cs.findSession(ctx, browserKey, sessionId)
	if err != nil {
		return nil, err
	}
	return &dto.TurnPhaseResponse{
		ChatSessionId: session.Id,
		Phase:         string(cs.sessions.Phase(session.Id.String())),
	}, nil
}

// SendMessage runs one turn. Failures inside the turn are reported as a
// single assistant message, not as an error; only a missing session or a
// turn already in flight are returned as errors.
func (cs *chatService) SendMessage(ctx context.Context, browserKey string, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	session, err := cs.findSession(ctx, browserKey, req.ChatSessionId)
	if err != nil {
		return nil, err
	}

	sid := session.Id.String()
	if !cs.sessions.AcquireTurn(sid) {
		return nil, apperr.New(apperr.KindTurnInProgress, "a reply is still being prepared for this session")
	}
	defer cs.sessions.ReleaseTurn(sid)

	t := &chatTurn{
		cs:         cs,
		ctx:        ctx,
		session:    session,
		browserKey: browserKey,
		res:        &dto.SendMessageResponse{ChatSessionId: session.Id, Replies: []*dto.ChatMessageResponse{}},
	}
	t.machine = turn.NewMachine(t.phaseChanged)
	if err := t.machine.Fire(turn.EventSubmit); err != nil {
		return nil, err
	}

	t.run(req)

	cs.publish(ctx, events.NewChatTurnCompleted(sid, t.lookup, t.failureKind))

	t.res.Phase = string(t.machine.Phase())
	known, _ := cs.sessions.GetCaseInfo(sid)
	t.res.CaseInfo = toCaseInfoResponse(known)
	return t.res, nil
}

// chatTurn carries the state of one SendMessage call.
type chatTurn struct {
	cs         *chatService
	ctx        context.Context
	session    *entity.ChatSession
	browserKey string
	machine    *turn.Machine
	res        *dto.SendMessageResponse

	last        time.Time
	lookup      bool
	failureKind string
}

func (t *chatTurn) run(req *dto.SendMessageRequest) {
	cs := t.cs
	sid := t.session.Id.String()

	history, err := cs.loadMessages(t.ctx, t.session.Id)
	if err != nil {
		t.fail(err)
		return
	}
	isFirst := true
	for _, m := range history {
		if m.Role == constant.ChatMessageRoleUser {
			isFirst = false
		}
		if m.CreatedAt.After(t.last) {
			t.last = m.CreatedAt
		}
	}

	userMsg := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: t.session.Id,
		Content:       strings.TrimSpace(req.Content),
		Role:          constant.ChatMessageRoleUser,
		CreatedAt:     t.tick(),
	}
	if req.Attachment != nil {
		userMsg.Attachment = &entity.Attachment{FileName: req.Attachment.FileName, FileSize: req.Attachment.FileSize}
	}
	t.res.Sent = toMessageResponse(userMsg)

	if err := cs.uowFactory.NewUnitOfWork(t.ctx).ChatMessageRepository().Create(t.ctx, userMsg); err != nil {
		t.fail(apperr.Persistence(err, "failed to save user message"))
		return
	}
	cs.notify(t.browserKey, websocket.Event{Type: PushChatMessage, SessionID: sid, Data: t.res.Sent})

	if isFirst {
		cs.requestTitle(t.ctx, t.session, userMsg.Content)
	}

	known, _ := cs.sessions.GetCaseInfo(sid)

	var (
		reply    *AssistantReply
		analysis extract.Analysis
	)
	g, gctx := errgroup.WithContext(t.ctx)
	g.Go(func() error {
		r, err := cs.responder.Respond(gctx, sid, cs.llmHistory(history), userMsg.Content)
		if err != nil {
			return err
		}
		reply = r
		return nil
	})
	g.Go(func() error {
		analysis = cs.resolver.Resolve(userMsg.Content, known)
		return nil
	})
	if err := g.Wait(); err != nil {
		t.fail(err)
		return
	}

	html, err := cs.renderer.HTML(reply.Text)
	if err != nil {
		html = cs.renderer.Sanitize(reply.Text)
	}
	if _, err := t.append(html, nil); err != nil {
		t.fail(err)
		return
	}

	if !known.Confirmed {
		next := extract.Known{Location: known.Location, CaseType: analysis.CaseType}
		if analysis.LocationFound {
			next.Location = analysis.Location
		}
		cs.sessions.SaveCaseInfo(sid, next)
	}

	if !needsLookup(analysis, reply.LawyerFlag) {
		_ = t.machine.Fire(turn.EventReplyDone)
		return
	}

	t.lookup = true
	_ = t.machine.Fire(turn.EventReplyWithLookup)
	t.matchLawyers(analysis)
}

// needsLookup reports whether a lawyer lookup follows the reply. The
// assistant flag alone is enough; without it a known location must come with
// a location cue or a legal keyword. A flagged turn with no location ends in
// the "tell me your county and state" message.
func needsLookup(a extract.Analysis, lawyerFlag bool) bool {
	return lawyerFlag || (a.LocationFound && (a.LocationCue || a.LegalKeyword))
}

func (t *chatTurn) matchLawyers(a extract.Analysis) {
	cs := t.cs

	match, err := cs.lawyers.Match(t.ctx, a.Location, a.CaseType)
	if err != nil && apperr.Is(err, apperr.KindPersistence) {
		t.fail(err)
		return
	}

	var (
		content string
		lawyers []entity.LawyerProfile
	)
	switch {
	case err == nil:
		content = lawyerIntro(a.Location, match)
		lawyers = match.Lawyers
	case apperr.Is(err, apperr.KindNoLawyersFound):
		content = fmt.Sprintf(constant.NoLawyersFoundTemplate, a.Location.String())
	case apperr.Is(err, apperr.KindNoLocationSupplied):
		content = constant.NoLocationSuppliedMessage
	default:
		content = constant.FailureMessageFor(apperr.KindOf(err))
	}

	if _, err := t.append(content, lawyers); err != nil {
		t.fail(err)
		return
	}
	_ = t.machine.Fire(turn.EventLawyersAppended)

	if match != nil {
		cs.publish(t.ctx, events.NewLawyersMatched(
			t.session.Id.String(), match.Location.String(), match.CaseType, match.Granularity, len(match.Lawyers),
		))
	}
}

func lawyerIntro(requested extract.Location, match *LawyerMatch) string {
	if match.Granularity == GranularityState && (requested.County != "" || requested.City != "") {
		place := extract.Location{County: requested.County, City: requested.City, Parish: requested.Parish}.String()
		return fmt.Sprintf(constant.LawyersStateFallback, place, requested.State)
	}
	if match.CaseType != "" {
		return fmt.Sprintf(constant.LawyersFoundCaseTemplate, match.CaseType, match.Location.String())
	}
	return fmt.Sprintf(constant.LawyersFoundTemplate, match.Location.String())
}

// fail moves the turn through Error back to Idle, appending one apology.
// The apology is returned even when it cannot be stored.
func (t *chatTurn) fail(cause error) {
	kind := failureKind(cause)
	t.failureKind = kind.String()

	t.cs.logger.Error("CHAT", "Chat turn failed", map[string]interface{}{
		"session_id": t.session.Id.String(),
		"kind":       kind.String(),
		"error":      cause.Error(),
	})

	_ = t.machine.Fire(turn.EventFail)
	if msg, err := t.append(constant.FailureMessageFor(kind), nil); err != nil {
		t.res.Replies = append(t.res.Replies, toMessageResponse(msg))
		t.cs.logger.Warn("CHAT", "Failed to save apology message", map[string]interface{}{
			"session_id": t.session.Id.String(),
			"error":      err.Error(),
		})
	}
	_ = t.machine.Fire(turn.EventFailureAppended)
}

func failureKind(err error) apperr.Kind {
	kind := apperr.KindOf(err)
	if kind == apperr.KindUnknown && (errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)) {
		return apperr.KindNetwork
	}
	return kind
}

// append stores one assistant message and adds it to the replies.
func (t *chatTurn) append(content string, lawyers []entity.LawyerProfile) (*entity.ChatMessage, error) {
	msg := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: t.session.Id,
		Content:       content,
		Role:          constant.ChatMessageRoleAssistant,
		Lawyers:       lawyers,
		CreatedAt:     t.tick(),
	}
	if err := t.cs.uowFactory.NewUnitOfWork(t.ctx).ChatMessageRepository().Create(t.ctx, msg); err != nil {
		return msg, apperr.Persistence(err, "failed to save assistant message")
	}

	res := toMessageResponse(msg)
	t.res.Replies = append(t.res.Replies, res)

	t.cs.notify(t.browserKey, websocket.Event{Type: PushChatMessage, SessionID: t.session.Id.String(), Data: res})
	return msg, nil
}

// tick returns a creation time strictly after every earlier message of the
// session, at the microsecond precision the database keeps.
func (t *chatTurn) tick() time.Time {
	now := t.cs.now().UTC().Truncate(time.Microsecond)
	if !now.After(t.last) {
		now = t.last.Add(time.Microsecond)
	}
	t.last = now
	return now
}

func (t *chatTurn) phaseChanged(_, to turn.Phase) {
	sid := t.session.Id.String()
	t.cs.sessions.SetPhase(sid, to)
	t.cs.notify(t.browserKey, websocket.Event{
		Type:      PushTurnPhase,
		SessionID: sid,
		Data:      dto.TurnPhaseResponse{ChatSessionId: t.session.Id, Phase: string(to)},
	})
}

func (cs *chatService) findSession(ctx context.Context, browserKey string, sessionId uuid.UUID) (*entity.ChatSession, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedByBrowser{BrowserKey: browserKey},
	)
	if err != nil {
		return nil, apperr.Persistence(err, "failed to load chat session")
	}
	if session == nil {
		return nil, apperr.NotFound("chat session not found")
	}
	return session, nil
}

func (cs *chatService) loadMessages(ctx context.Context, sessionId uuid.UUID) ([]*entity.ChatMessage, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, apperr.Persistence(err, "failed to load chat history")
	}
	return messages, nil
}

// llmHistory converts the stored transcript for the model. The opening
// welcome message is dropped.
func (cs *chatService) llmHistory(messages []*entity.ChatMessage) []llm.Message {
	out := make([]llm.Message, 0, len(messages))
	for i, m := range messages {
		if i == 0 && m.Role == constant.ChatMessageRoleAssistant {
			continue
		}
		role := llm.RoleUser
		content := m.Content
		if m.Role == constant.ChatMessageRoleAssistant {
			role = llm.RoleAssistant
			content = cs.renderer.PlainText(m.Content)
		}
		if content == "" {
			continue
		}
		out = append(out, llm.Message{Role: role, Content: content})
	}
	return out
}

func (cs *chatService) requestTitle(ctx context.Context, session *entity.ChatSession, message string) {
	if cs.titles == nil {
		return
	}
	err := cs.titles.RequestTitle(ctx, TitleRequested{
		ChatSessionId: session.Id,
		BrowserKey:    session.BrowserKey,
		Message:       message,
	})
	if err != nil {
		cs.logger.Warn("CHAT", "Failed to request session title", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
	}
}

func (cs *chatService) notify(browserKey string, event websocket.Event) {
	if cs.notifier != nil {
		cs.notifier.Push(browserKey, event)
	}
}

func (cs *chatService) publish(ctx context.Context, event events.Event) {
	if cs.publisher == nil {
		return
	}
	if err := cs.publisher.Publish(ctx, event); err != nil {
		cs.logger.Warn("CHAT", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}

func toMessageResponse(m *entity.ChatMessage) *dto.ChatMessageResponse {
	res := &dto.ChatMessageResponse{
		Id:        m.Id,
		Role:      m.Role,
		Content:   m.Content,
		IsUser:    m.Role == constant.ChatMessageRoleUser,
		CreatedAt: m.CreatedAt,
	}
	if m.Attachment != nil {
		res.Attachment = &dto.AttachmentDTO{FileName: m.Attachment.FileName, FileSize: m.Attachment.FileSize}
	}
	if len(m.Lawyers) > 0 {
		res.Lawyers = ToLawyerResponses(m.Lawyers)
	}
	return res
}

func toCaseInfoResponse(k extract.Known) *dto.CaseInfoResponse {
	return &dto.CaseInfoResponse{
		County:    k.Location.County,
		City:      k.Location.City,
		State:     k.Location.State,
		Location:  k.Location.String(),
		CaseType:  k.CaseType,
		Confirmed: k.Confirmed,
	}
}
