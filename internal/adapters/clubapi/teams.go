package clubapi

import "context"

// ListTeams fetches every team.
func (c *Client) ListTeams(ctx context.Context) ([]Team, error) {
	var teams []Team
	if err := c.do(ctx, "GET", "/api/teams/", nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// CreateTeam creates a team.
func (c *Client) CreateTeam(ctx context.Context, p TeamPayload) (Team, error) {
	var t Team
	err := c.do(ctx, "POST", "/api/teams/", p, &t)
	return t, err
}
