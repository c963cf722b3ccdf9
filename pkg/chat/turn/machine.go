// Package turn is the per-session state machine for one chat turn.
package turn

import (
	"fmt"
	"sync"
)

type Phase string

const (
	PhaseIdle                Phase = "IDLE"
	PhaseAwaitingAIResponse  Phase = "AWAITING_AI_RESPONSE"
	PhaseAwaitingLawyerMatch Phase = "AWAITING_LAWYER_MATCH"
	PhaseError               Phase = "ERROR"
)

type Event string

const (
	EventSubmit          Event = "SUBMIT"
	EventReplyWithLookup Event = "REPLY_WITH_LOOKUP"
	EventReplyDone       Event = "REPLY_DONE"
	EventLawyersAppended Event = "LAWYERS_APPENDED"
	EventFail            Event = "FAIL"
	EventFailureAppended Event = "FAILURE_APPENDED"
)

var transitions = map[Phase]map[Event]Phase{
	PhaseIdle: {
		EventSubmit: PhaseAwaitingAIResponse,
	},
	PhaseAwaitingAIResponse: {
		EventReplyWithLookup: PhaseAwaitingLawyerMatch,
		EventReplyDone:       PhaseIdle,
	},
	PhaseAwaitingLawyerMatch: {
		EventLawyersAppended: PhaseIdle,
	},
	PhaseError: {
		EventFailureAppended: PhaseIdle,
	},
}

// Next returns the phase reached from "from" on ev. EventFail is accepted
// from every phase except Error itself.
func Next(from Phase, ev Event) (Phase, error) {
	if ev == EventFail && from != PhaseError {
		return PhaseError, nil
	}
	if to, ok := transitions[from][ev]; ok {
		return to, nil
	}
	return from, fmt.Errorf("invalid turn transition: %s on %s", ev, from)
}

// Machine tracks one turn. OnChange observes every accepted transition.
type Machine struct {
	mu       sync.Mutex
	phase    Phase
	OnChange func(from, to Phase)
}

func NewMachine(onChange func(from, to Phase)) *Machine {
	return &Machine{phase: PhaseIdle, OnChange: onChange}
}

func (m *Machine) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Fire applies ev or returns an error leaving the phase unchanged.
func (m *Machine) Fire(ev Event) error {
	m.mu.Lock()
	from := m.phase
	to, err := Next(from, ev)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.phase = to
	m.mu.Unlock()

	if m.OnChange != nil {
		m.OnChange(from, to)
	}
	return nil
}
