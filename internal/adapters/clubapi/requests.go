package clubapi

import (
	"context"
	"fmt"
)

// ListBookingRequests fetches every booking request.
func (c *Client) ListBookingRequests(ctx context.Context) ([]BookingRequest, error) {
	var reqs []BookingRequest
	if err := c.do(ctx, "GET", "/api/requests/", nil, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// GetBookingRequest fetches one booking request.
func (c *Client) GetBookingRequest(ctx context.Context, id int64) (BookingRequest, error) {
	var r BookingRequest
	err := c.do(ctx, "GET", fmt.Sprintf("/api/requests/%d/", id), nil, &r)
	return r, err
}

// CreateBookingRequest submits a new booking request.
func (c *Client) CreateBookingRequest(ctx context.Context, p BookingRequestPayload) (BookingRequest, error) {
	var r BookingRequest
	err := c.do(ctx, "POST", "/api/requests/", p, &r)
	return r, err
}

// UpdateBookingRequest updates a booking request. Empty payload fields are not sent.
func (c *Client) UpdateBookingRequest(ctx context.Context, id int64, p BookingRequestPayload) (BookingRequest, error) {
	var r BookingRequest
	err := c.do(ctx, "PUT", fmt.Sprintf("/api/requests/%d/", id), p, &r)
	return r, err
}

// DeleteBookingRequest removes a booking request.
func (c *Client) DeleteBookingRequest(ctx context.Context, id int64) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/api/requests/%d/", id), nil, nil)
}
