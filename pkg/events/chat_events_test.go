package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactRequestRoundTripThroughJSON(t *testing.T) {
	req := ContactRequest{
		LawyerID:    42,
		FirmName:    "Smith & Jones",
		FirmEmail:   "info@smith.example",
		ClientName:  "Pat",
		ClientEmail: "pat@example.com",
		Message:     "Please call me",
	}
	evt := NewLawyerContactRequested(req)
	assert.Equal(t, TypeLawyerContactRequested, evt.EventType())

	raw, err := json.Marshal(evt.Payload())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, req, ContactRequestFromPayload(decoded))
}

func TestNewLawyersMatched(t *testing.T) {
	evt := NewLawyersMatched("s1", "Lane County, Oregon", "DUI Cases", "county_state", 3)
	assert.Equal(t, TypeLawyersMatched, evt.Type)
	assert.Equal(t, 3, evt.Data["count"])
	assert.False(t, evt.Timestamp().IsZero())
}
