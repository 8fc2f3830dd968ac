package auctionapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/PankajNarwade28/BPL-Admin-Panel/go/internal/models"
)

// GetTeams fetches the full team list. PINs are never included.
func (c *Client) GetTeams(ctx context.Context) ([]models.Team, error) {
	body, err := c.Get(ctx, TeamsEndpoint)
	if err != nil {
		return nil, wrapErr("failed to get teams", err)
	}

	env, err := decode(body)
	if err != nil {
		return nil, err
	}
	return env.Teams, nil
}

// GetStats fetches the aggregate auction stats.
func (c *Client) GetStats(ctx context.Context) (models.Stats, error) {
	body, err := c.Get(ctx, StatsEndpoint)
	if err != nil {
		return models.Stats{}, wrapErr("failed to get stats", err)
	}

	env, err := decode(body)
	if err != nil {
		return models.Stats{}, err
	}
	if env.Stats == nil {
		return models.Stats{}, nil
	}
	return *env.Stats, nil
}

// UpdateTeamRequest carries the editable team fields. Pin is only sent when
// non-empty so an edit without a PIN change leaves the old one in place.
type UpdateTeamRequest struct {
	TeamName    string `json:"teamName"`
	CaptainName string `json:"captainName"`
	TeamID      string `json:"teamId"`
	Pin         string `json:"pin,omitempty"`
}

// UpdateTeam edits a team's details.
func (c *Client) UpdateTeam(ctx context.Context, teamID string, req UpdateTeamRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal team update: %w", err)
	}

	if _, err := c.Put(ctx, TeamsEndpoint+"/"+teamID, "application/json", bytes.NewReader(payload)); err != nil {
		return wrapErr("failed to update team", err)
	}
	return nil
}

// DeleteTeam removes a team.
func (c *Client) DeleteTeam(ctx context.Context, teamID string) error {
	if _, err := c.Delete(ctx, TeamsEndpoint+"/"+teamID); err != nil {
		return wrapErr("failed to delete team", err)
	}
	return nil
}
