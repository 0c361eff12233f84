package notify

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mkraj/wholemart/internal/models"
)

// Client talks to the notification REST surface and opens the live
// event stream. One instance serves one authenticated session.
type Client struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewClient creates new Client instance
func NewClient(baseURL, token string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: baseURL,
		token:   token,
	}
}

func (c *Client) newRequest(ctx context.Context, method string, elem ...string) (*http.Request, error) {
	u, err := url.JoinPath(c.baseURL, elem...)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, err
	}
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: c.token})
	return req, nil
}

type listResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unreadCount"`
}

// List returns the most recent notifications together with the
// authoritative unread count.
// GET /api/notifications?limit=N
func (c *Client) List(ctx context.Context, limit int) ([]models.Notification, int, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "api", "notifications")
	if err != nil {
		return nil, 0, err
	}
	q := req.URL.Query()
	q.Set("limit", fmt.Sprint(limit))
	req.URL.RawQuery = q.Encode()

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, 0, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("list notifications: unexpected status %d", resp.StatusCode)
	}

	var listResp listResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, 0, err
	}
	return listResp.Notifications, listResp.UnreadCount, nil
}

// MarkRead marks one notification read. Re-reading an already read
// notification is a no-op success server-side.
// PATCH /api/notifications/{id}/read
func (c *Client) MarkRead(ctx context.Context, id uuid.UUID) error {
	req, err := c.newRequest(ctx, http.MethodPatch, "api", "notifications", id.String(), "read")
	if err != nil {
		return err
	}
	return c.doIdempotent(req)
}

// MarkAllRead marks every notification of the session's user read.
// PATCH /api/notifications/read-all
func (c *Client) MarkAllRead(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodPatch, "api", "notifications", "read-all")
	if err != nil {
		return err
	}
	return c.doIdempotent(req)
}

// Delete removes a notification. A 404 counts as success: the record
// is gone either way.
// DELETE /api/notifications/{id}
func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "api", "notifications", id.String())
	if err != nil {
		return err
	}
	return c.doIdempotent(req)
}

func (c *Client) doIdempotent(req *http.Request) error {
	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return err
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
		return nil
	default:
		return fmt.Errorf("%s %s: unexpected status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
}

// Open establishes the server-sent events stream. The returned
// channel closes on any transport-level disconnect; reconnecting is
// the caller's business.
// GET /api/notifications/stream
func (c *Client) Open(ctx context.Context, token string) (<-chan models.NotificationEvent, error) {
	u, err := url.JoinPath(c.baseURL, "api", "notifications", "stream")
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	req.Header.Set("Accept", "text/event-stream")

	// no overall timeout on an established stream; liveness is
	// inferred from disconnect, not polling
	stream := &http.Client{}
	resp, err := stream.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("open notification stream: unexpected status %d", resp.StatusCode)
	}

	events := make(chan models.NotificationEvent)
	go func() {
		defer close(events)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		var data strings.Builder
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case strings.HasPrefix(line, "data:"):
				data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
			case line == "":
				if data.Len() == 0 {
					continue
				}
				var ev models.NotificationEvent
				if err := json.Unmarshal([]byte(data.String()), &ev); err == nil {
					select {
					case events <- ev:
					case <-ctx.Done():
						return
					}
				}
				data.Reset()
			}
		}
	}()

	return events, nil
}
