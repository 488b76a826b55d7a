package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"splitflap/internal/applog"
	"splitflap/internal/board"
)

// Local sends grids to a board's local network API.
type Local struct {
	apiKey string
	ip     string
	client *http.Client
}

func NewLocal(apiKey, ip string) *Local {
	return &Local{
		apiKey: apiKey,
		ip:     ip,
		client: &http.Client{Timeout: clientTimeout},
	}
}

func (l *Local) Name() string { return "local" }

func (l *Local) Send(ctx context.Context, g board.Grid) error {
	body, err := json.Marshal(gridPayload(g))
	if err != nil {
		return err
	}
	url := fmt.Sprintf("http://%s:7000/local-api/message", l.ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("X-Vestaboard-Local-Api-Key", l.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := l.client.Do(req)
	if err != nil {
		return &APIError{Msg: err.Error()}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	applog.Debugf("local send: status %d in %s", resp.StatusCode, time.Since(start).Round(time.Millisecond))
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return &APIError{Status: resp.StatusCode, Msg: "local API rejected message"}
	}
	return nil
}
