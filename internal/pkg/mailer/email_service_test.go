package mailer

import (
	"bytes"
	"testing"

	"lawpro-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type captureSender struct {
	sent []*gomail.Message
	err  error
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.sent = append(c.sent, m...)
	return c.err
}

func TestSendLawyerContact(t *testing.T) {
	sender := &captureSender{}
	svc := NewEmailServiceWithSender(sender, "noreply@lawpro.test", "LawPro")

	err := svc.SendLawyerContact(events.ContactRequest{
		LawyerID:    3,
		FirmName:    "Smith & Jones",
		FirmEmail:   "intake@smithjones.test",
		ClientName:  "Ann <Lee>",
		ClientEmail: "ann@example.com",
		Message:     "I was arrested for DUI last night.",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	m := sender.sent[0]
	assert.Equal(t, []string{"intake@smithjones.test"}, m.GetHeader("To"))
	assert.Equal(t, []string{"ann@example.com"}, m.GetHeader("Reply-To"))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Ann &lt;Lee&gt;")
	assert.Contains(t, buf.String(), "not provided")
}

func TestSendLawyerContact_PropagatesDialError(t *testing.T) {
	sender := &captureSender{err: assert.AnError}
	svc := NewEmailServiceWithSender(sender, "noreply@lawpro.test", "LawPro")

	err := svc.SendLawyerContact(events.ContactRequest{FirmEmail: "a@b.test", ClientEmail: "c@d.test"})
	assert.ErrorIs(t, err, assert.AnError)
}
