package memory

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"lawpro-be/pkg/chat/turn"
	"lawpro-be/pkg/extract"

	"github.com/stretchr/testify/assert"
)

func TestSessionRepository_CaseInfo(t *testing.T) {
	repo := NewSessionRepository()

	_, ok := repo.GetCaseInfo("s1")
	assert.False(t, ok)

	info := extract.Known{Location: extract.Location{County: "Lane", State: "Oregon"}, CaseType: "DUI Cases", Confirmed: true}
	repo.SaveCaseInfo("s1", info)

	got, ok := repo.GetCaseInfo("s1")
	assert.True(t, ok)
	assert.Equal(t, info, got)

	_, ok = repo.GetCaseInfo("s2")
	assert.False(t, ok)
}

func TestSessionRepository_PhaseDefaultsToIdle(t *testing.T) {
	repo := NewSessionRepository()
	assert.Equal(t, turn.PhaseIdle, repo.Phase("s1"))

	repo.SetPhase("s1", turn.PhaseAwaitingAIResponse)
	assert.Equal(t, turn.PhaseAwaitingAIResponse, repo.Phase("s1"))

	repo.Delete("s1")
	assert.Equal(t, turn.PhaseIdle, repo.Phase("s1"))
}

func TestSessionRepository_TurnGuard(t *testing.T) {
	repo := NewSessionRepository()

	assert.True(t, repo.AcquireTurn("s1"))
	assert.False(t, repo.AcquireTurn("s1"))
	assert.True(t, repo.AcquireTurn("s2"))

	repo.ReleaseTurn("s1")
	assert.True(t, repo.AcquireTurn("s1"))
}

func TestSessionRepository_TurnGuardIsExclusive(t *testing.T) {
	repo := NewSessionRepository()

	var winners int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if repo.AcquireTurn("busy") {
				atomic.AddInt32(&winners, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), winners)
}

func TestSessionRepository_TurnGuardExpires(t *testing.T) {
	repo := NewSessionRepositoryWithTTL(time.Hour, 20*time.Millisecond)

	assert.True(t, repo.AcquireTurn("s1"))
	time.Sleep(40 * time.Millisecond)
	assert.True(t, repo.AcquireTurn("s1"))
}
