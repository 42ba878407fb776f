package clubapi

import "context"

// RunSolverCheck asks the API to check the schedule and returns its message.
func (c *Client) RunSolverCheck(ctx context.Context) (string, error) {
	var res SolveResult
	if err := c.do(ctx, "POST", "/api/schedule/solve/", nil, &res); err != nil {
		return "", err
	}
	return res.Message, nil
}
