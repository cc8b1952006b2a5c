package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/jwebster45206/rpg-engine/internal/handlers"
	"github.com/jwebster45206/rpg-engine/pkg/storage"
)

// APIClient talks to the game API.
type APIClient struct {
	client  *http.Client
	baseURL string
}

func NewAPIClient(client *http.Client, baseURL string) *APIClient {
	return &APIClient{client: client, baseURL: baseURL}
}

func (c *APIClient) Healthy() bool {
	resp, err := c.client.Get(c.baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func (c *APIClient) CreateGame(name string) (*handlers.GameResponse, error) {
	var game handlers.GameResponse
	err := c.do(http.MethodPost, "/v1/games", handlers.GameRequest{Name: name}, http.StatusCreated, &game)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return &game, nil
}

func (c *APIClient) LoadGame(name string) (*handlers.GameResponse, error) {
	var game handlers.GameResponse
	err := c.do(http.MethodPost, "/v1/games/load", handlers.GameRequest{Name: name}, http.StatusCreated, &game)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	return &game, nil
}

func (c *APIClient) ListSaves() ([]storage.Save, error) {
	var resp handlers.SavesResponse
	if err := c.do(http.MethodGet, "/v1/saves", nil, http.StatusOK, &resp); err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	return resp.Saves, nil
}

// Act runs an action against a session. item is only sent for "use".
func (c *APIClient) Act(id uuid.UUID, action, item string) (*handlers.ActionResponse, error) {
	var body any
	if item != "" {
		body = handlers.GameRequest{Item: item}
	}
	var resp handlers.ActionResponse
	if err := c.do(http.MethodPost, fmt.Sprintf("/v1/games/%s/%s", id, action), body, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *APIClient) do(method, path string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		var errorResp handlers.ErrorResponse
		if err := json.Unmarshal(data, &errorResp); err != nil || errorResp.Error == "" {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(data))
		}
		return errors.New(errorResp.Error)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
