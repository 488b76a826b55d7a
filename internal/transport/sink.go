// Package transport delivers an encoded grid to a display: the device's
// local network API, the hosted read/write API, or the console for
// previews.
package transport

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"splitflap/internal/board"
	"splitflap/internal/config"
)

// Sink accepts one full board of character codes.
type Sink interface {
	Name() string
	Send(ctx context.Context, g board.Grid) error
}

// APIError is a non-success response from a board API.
type APIError struct {
	Status int
	Msg    string
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("board API error (status %d): %s", e.Status, e.Msg)
	}
	return "board API error: " + e.Msg
}

// BoardHeader implements the on-board error contract.
func (e *APIError) BoardHeader() string { return "api error" }

// BoardText implements the on-board error contract.
func (e *APIError) BoardText() string {
	switch {
	case e.Status == http.StatusNotFound:
		return "service not found"
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return "access denied"
	case e.Status >= 500:
		return "service temporarily down"
	default:
		return "service error"
	}
}

const clientTimeout = 10 * time.Second

// New builds the named sink from config and environment.
func New(name string, cfg config.Config) (Sink, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "local":
		key := strings.TrimSpace(os.Getenv("LOCAL_API_KEY"))
		if key == "" {
			return nil, &config.MissingError{Key: "LOCAL_API_KEY"}
		}
		ip := strings.TrimSpace(os.Getenv("BOARD_IP"))
		if ip == "" {
			ip = strings.TrimSpace(cfg.BoardIP)
		}
		if ip == "" {
			return nil, &config.MissingError{Key: "BOARD_IP"}
		}
		return NewLocal(key, ip), nil
	case "internet":
		key := strings.TrimSpace(os.Getenv("INTERNET_API_KEY"))
		if key == "" {
			return nil, &config.MissingError{Key: "INTERNET_API_KEY"}
		}
		return NewInternet(key), nil
	case "console":
		return NewConsole(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unknown transport: %s", name)
	}
}

func gridPayload(g board.Grid) [board.Rows][board.Cols]int {
	return g
}
