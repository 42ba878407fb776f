package clubapi

import (
	"context"
	"fmt"
)

// ListEvents fetches every event, ordered by start time.
func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	if err := c.do(ctx, "GET", "/api/events/", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEvent fetches a single event.
func (c *Client) GetEvent(ctx context.Context, id int64) (Event, error) {
	var e Event
	err := c.do(ctx, "GET", fmt.Sprintf("/api/events/%d/", id), nil, &e)
	return e, err
}

// CreateEvent creates an event and returns it as stored by the API.
func (c *Client) CreateEvent(ctx context.Context, p EventPayload) (Event, error) {
	var e Event
	err := c.do(ctx, "POST", "/api/events/", p, &e)
	return e, err
}

// UpdateEvent replaces an event.
func (c *Client) UpdateEvent(ctx context.Context, id int64, p EventPayload) (Event, error) {
	var e Event
	err := c.do(ctx, "PUT", fmt.Sprintf("/api/events/%d/", id), p, &e)
	return e, err
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/api/events/%d/", id), nil, nil)
}
