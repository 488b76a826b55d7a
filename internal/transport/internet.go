package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"splitflap/internal/applog"
	"splitflap/internal/board"
)

const internetURL = "https://rw.vestaboard.com/"

// Internet sends grids through the hosted read/write API.
type Internet struct {
	apiKey string
	client *http.Client
}

func NewInternet(apiKey string) *Internet {
	return &Internet{
		apiKey: apiKey,
		client: &http.Client{Timeout: clientTimeout},
	}
}

func (i *Internet) Name() string { return "internet" }

func (i *Internet) Send(ctx context.Context, g board.Grid) error {
	body, err := json.Marshal(gridPayload(g))
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, internetURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("X-Vestaboard-Read-Write-Key", i.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return &APIError{Msg: err.Error()}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	// 304 means the board already shows this content.
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNotModified:
		applog.Debugf("internet send: status %d", resp.StatusCode)
		return nil
	default:
		return &APIError{Status: resp.StatusCode, Msg: "read/write API rejected message"}
	}
}
