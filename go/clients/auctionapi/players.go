package auctionapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/PankajNarwade28/BPL-Admin-Panel/go/internal/models"
)

// GetPlayers fetches the full player list.
func (c *Client) GetPlayers(ctx context.Context) ([]models.Player, error) {
	body, err := c.Get(ctx, PlayersEndpoint)
	if err != nil {
		return nil, wrapErr("failed to get players", err)
	}

	env, err := decode(body)
	if err != nil {
		return nil, err
	}
	return env.Players, nil
}

// UpdatePlayerRequest carries the editable player fields.
type UpdatePlayerRequest struct {
	Name      string                `json:"name"`
	Category  models.PlayerCategory `json:"category"`
	BasePrice int                   `json:"basePrice"`
}

// UpdatePlayer edits a player's registration details.
func (c *Client) UpdatePlayer(ctx context.Context, playerID string, req UpdatePlayerRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal player update: %w", err)
	}

	if _, err := c.Put(ctx, PlayersEndpoint+"/"+playerID, "application/json", bytes.NewReader(payload)); err != nil {
		return wrapErr("failed to update player", err)
	}
	return nil
}

// DeletePlayer removes a player from the pool.
func (c *Client) DeletePlayer(ctx context.Context, playerID string) error {
	if _, err := c.Delete(ctx, PlayersEndpoint+"/"+playerID); err != nil {
		return wrapErr("failed to delete player", err)
	}
	return nil
}

// RegisterPlayerRequest registers one player. Photo is optional; when nil no
// photo part is uploaded and the server uses its placeholder.
type RegisterPlayerRequest struct {
	Name      string
	Category  models.PlayerCategory
	BasePrice int
	PhotoName string
	Photo     io.Reader
}

// RegisterPlayer submits a single player registration as a multipart form.
func (c *Client) RegisterPlayer(ctx context.Context, req RegisterPlayerRequest) error {
	fields := map[string]string{
		"name":      req.Name,
		"category":  string(req.Category),
		"basePrice": strconv.Itoa(req.BasePrice),
	}

	contentType, body, err := multipartBody(fields, PhotoField, req.PhotoName, req.Photo)
	if err != nil {
		return err
	}

	if _, err := c.Post(ctx, RegisterPlayerEndpoint, contentType, body); err != nil {
		return wrapErr("failed to register player", err)
	}
	return nil
}

// BulkUploadPlayers uploads a CSV of players and returns the server's
// summary message.
func (c *Client) BulkUploadPlayers(ctx context.Context, fileName string, csv io.Reader) (string, error) {
	contentType, body, err := multipartBody(nil, CSVFileField, fileName, csv)
	if err != nil {
		return "", err
	}

	respBody, err := c.Post(ctx, BulkUploadEndpoint, contentType, body)
	if err != nil {
		return "", wrapErr("failed to bulk upload players", err)
	}

	env, err := decode(respBody)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}
