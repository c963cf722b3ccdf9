package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := errors.New("connection refused")
	wrapped := fmt.Errorf("send turn: %w", Wrap(base, KindNetwork, "webhook unreachable"))

	assert.Equal(t, KindNetwork, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindNetwork))
	assert.False(t, Is(wrapped, KindPersistence))
	assert.ErrorIs(t, wrapped, base)

	assert.Equal(t, KindUnknown, KindOf(base))
	assert.False(t, Is(nil, KindUnknown))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, KindPersistence, "ignored"))
}

func TestErrorString(t *testing.T) {
	err := New(KindNoLawyersFound, "no lawyers found for Allen, Indiana")
	assert.Equal(t, "[NO_LAWYERS_FOUND] no lawyers found for Allen, Indiana", err.Error())

	withCause := Wrap(errors.New("boom"), KindPersistence, "save message")
	assert.Equal(t, "[PERSISTENCE_ERROR] save message: boom", withCause.Error())

	assert.Equal(t, "KIND(99)", Kind(99).String())
}
