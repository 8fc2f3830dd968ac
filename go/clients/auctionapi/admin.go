package auctionapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/PankajNarwade28/BPL-Admin-Panel/go/internal/models"
)

// GenerateTeams asks the server to create count teams with random captain
// credentials. The returned teams carry their one-time PINs; the caller is
// responsible for not losing them.
func (c *Client) GenerateTeams(ctx context.Context, count int) ([]models.Team, error) {
	payload, err := json.Marshal(map[string]int{"count": count})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generate request: %w", err)
	}

	body, err := c.Post(ctx, GenerateTeamsEndpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, wrapErr("failed to generate teams", err)
	}

	env, err := decode(body)
	if err != nil {
		return nil, err
	}
	return env.Teams, nil
}

// CreateCaptainRequest creates one team with its captain. Logo is optional.
type CreateCaptainRequest struct {
	TeamName    string
	CaptainName string
	TeamID      string
	Pin         string
	LogoName    string
	Logo        io.Reader
}

// CreateCaptain registers a single team as a multipart form.
func (c *Client) CreateCaptain(ctx context.Context, req CreateCaptainRequest) (*models.Team, error) {
	fields := map[string]string{
		"teamName":    req.TeamName,
		"captainName": req.CaptainName,
		"teamId":      req.TeamID,
		"pin":         req.Pin,
	}

	contentType, body, err := multipartBody(fields, LogoField, req.LogoName, req.Logo)
	if err != nil {
		return nil, err
	}

	respBody, err := c.Post(ctx, CreateCaptainEndpoint, contentType, body)
	if err != nil {
		return nil, wrapErr("failed to create captain", err)
	}

	env, err := decode(respBody)
	if err != nil {
		return nil, err
	}
	return env.Team, nil
}

// ResetAuction clears all bids and resets rosters and budgets, keeping
// players and teams. There is no undo.
func (c *Client) ResetAuction(ctx context.Context) error {
	if _, err := c.Post(ctx, ResetAuctionEndpoint, "application/json", nil); err != nil {
		return wrapErr("failed to reset auction", err)
	}
	return nil
}

// ClearAllData wipes players, teams, bids and auction state. There is no undo.
func (c *Client) ClearAllData(ctx context.Context) error {
	if _, err := c.Post(ctx, ClearAllDataEndpoint, "application/json", nil); err != nil {
		return wrapErr("failed to clear all data", err)
	}
	return nil
}
