package memory

import (
	"time"

	"lawpro-be/pkg/chat/turn"
	"lawpro-be/pkg/extract"

	"github.com/patrickmn/go-cache"
)

const (
	caseInfoPrefix = "case:"
	phasePrefix    = "phase:"
	turnPrefix     = "turn:"
)

// SessionRepository keeps per-session conversation state that is never
// persisted: the case info gathered so far, the current turn phase and the
// in-flight turn guard.
type SessionRepository struct {
	cache   *cache.Cache
	turnTTL time.Duration
}

func NewSessionRepository() *SessionRepository {
	return NewSessionRepositoryWithTTL(24*time.Hour, 5*time.Minute)
}

// NewSessionRepositoryWithTTL sets how long idle session state lives and how
// long a turn guard may be held before it is considered abandoned.
func NewSessionRepositoryWithTTL(stateTTL, turnTTL time.Duration) *SessionRepository {
	return &SessionRepository{
		cache:   cache.New(stateTTL, 10*time.Minute),
		turnTTL: turnTTL,
	}
}

func (r *SessionRepository) SaveCaseInfo(sessionID string, info extract.Known) {
	r.cache.Set(caseInfoPrefix+sessionID, info, cache.DefaultExpiration)
}

func (r *SessionRepository) GetCaseInfo(sessionID string) (extract.Known, bool) {
	if x, found := r.cache.Get(caseInfoPrefix + sessionID); found {
		return x.(extract.Known), true
	}
	return extract.Known{}, false
}

func (r *SessionRepository) SetPhase(sessionID string, phase turn.Phase) {
	r.cache.Set(phasePrefix+sessionID, phase, cache.DefaultExpiration)
}

// Phase defaults to Idle for sessions with no recorded turn.
func (r *SessionRepository) Phase(sessionID string) turn.Phase {
	if x, found := r.cache.Get(phasePrefix + sessionID); found {
		return x.(turn.Phase)
	}
	return turn.PhaseIdle
}

// AcquireTurn marks a turn as in flight. It returns false when another turn
// for the same session already holds the guard.
func (r *SessionRepository) AcquireTurn(sessionID string) bool {
	return r.cache.Add(turnPrefix+sessionID, time.Now(), r.turnTTL) == nil
}

func (r *SessionRepository) ReleaseTurn(sessionID string) {
	r.cache.Delete(turnPrefix + sessionID)
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(caseInfoPrefix + sessionID)
	r.cache.Delete(phasePrefix + sessionID)
	r.cache.Delete(turnPrefix + sessionID)
}
