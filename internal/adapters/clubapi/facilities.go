package clubapi

import "context"

// ListFacilities fetches every facility.
func (c *Client) ListFacilities(ctx context.Context) ([]Facility, error) {
	var facilities []Facility
	if err := c.do(ctx, "GET", "/api/facilities/", nil, &facilities); err != nil {
		return nil, err
	}
	return facilities, nil
}
