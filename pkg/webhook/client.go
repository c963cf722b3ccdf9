// Package webhook talks to the automation workflow that can answer chat
// turns instead of a direct LLM call.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lawpro-be/pkg/apperr"
)

// Reply is the normalised webhook answer.
type Reply struct {
	ResponseText string
	LawyerFlag   bool
}

type Client struct {
	URL    string
	Client *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		URL: url,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

type sendRequest struct {
	Message string `json:"message"`
	ChatID  string `json:"chatId"`
}

type replyBody struct {
	Response    *string    `json:"response"`
	Output      *replyBody `json:"output"`
	ShowLawyers *bool      `json:"showLawyers"`
	ShowLawyer  *bool      `json:"show_lawyers"`
	LawyerFlag  *bool      `json:"lawyerFlag"`
}

// Send posts one user message. Transport failures, timeouts and non-2xx
// statuses are network errors; a body without reply text is malformed.
func (c *Client) Send(ctx context.Context, message, chatID string) (*Reply, error) {
	payload, err := json.Marshal(sendRequest{Message: message, ChatID: chatID})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewBuffer(payload))
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindNetwork, "create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindNetwork, "webhook request failed")
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindNetwork, "read webhook response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperr.Newf(apperr.KindNetwork, "webhook error: status %d", resp.StatusCode)
	}

	return ParseReply(bodyBytes)
}

// ParseReply accepts either an object or a non-empty array whose first
// element is the object. Text is read from output.response, then response.
func ParseReply(body []byte) (*Reply, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, apperr.New(apperr.KindMalformedResponse, "empty webhook response")
	}

	var item replyBody
	switch trimmed[0] {
	case '[':
		var items []replyBody
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, apperr.Wrap(err, apperr.KindMalformedResponse, "decode webhook response")
		}
		if len(items) == 0 {
			return nil, apperr.New(apperr.KindMalformedResponse, "webhook returned an empty array")
		}
		item = items[0]
	case '{':
		if err := json.Unmarshal(trimmed, &item); err != nil {
			return nil, apperr.Wrap(err, apperr.KindMalformedResponse, "decode webhook response")
		}
	default:
		return nil, apperr.New(apperr.KindMalformedResponse, "unexpected webhook response format")
	}

	text := ""
	if item.Output != nil && item.Output.Response != nil {
		text = *item.Output.Response
	}
	if strings.TrimSpace(text) == "" && item.Response != nil {
		text = *item.Response
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperr.New(apperr.KindMalformedResponse, "invalid response format from webhook")
	}

	return &Reply{ResponseText: text, LawyerFlag: item.lawyerFlag()}, nil
}

func (b *replyBody) lawyerFlag() bool {
	for _, f := range []*bool{b.ShowLawyers, b.ShowLawyer, b.LawyerFlag} {
		if f != nil && *f {
			return true
		}
	}
	if b.Output != nil {
		return b.Output.lawyerFlag()
	}
	return false
}
