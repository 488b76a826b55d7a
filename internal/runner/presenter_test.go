package runner

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"splitflap/internal/board"
	"splitflap/internal/transport"
	"splitflap/internal/widgets"
)

type captureSink struct {
	grids []board.Grid
	err   error
}

func (s *captureSink) Name() string { return "capture" }

func (s *captureSink) Send(_ context.Context, g board.Grid) error {
	s.grids = append(s.grids, g)
	return s.err
}

type stubWidget struct {
	rows []string
	err  error
}

func (stubWidget) Name() string { return "stub" }

func (w stubWidget) Generate(context.Context, json.RawMessage) ([]string, error) {
	return w.rows, w.err
}

func TestPresenterSendsEncodedRows(t *testing.T) {
	t.Parallel()
	reg := widgets.NewRegistry()
	reg.Register(stubWidget{rows: []string{"hello"}})
	sink := &captureSink{}
	p := &BoardPresenter{Widgets: reg, Sink: sink}

	if err := p.Present(context.Background(), "stub", nil, "test"); err != nil {
		t.Fatalf("Present() error: %v", err)
	}
	if len(sink.grids) != 1 {
		t.Fatalf("grids sent = %d, want 1", len(sink.grids))
	}
	if sink.grids[0][0][0] != 8 { // 'h'
		t.Fatalf("grid[0][0] = %d, want 8", sink.grids[0][0][0])
	}
}

func TestPresenterDegradesToErrorLayout(t *testing.T) {
	t.Parallel()
	reg := widgets.NewRegistry()
	reg.Register(stubWidget{err: errors.New("boom")})
	sink := &captureSink{}
	p := &BoardPresenter{Widgets: reg, Sink: sink}

	if err := p.Present(context.Background(), "stub", nil, "test"); err != nil {
		t.Fatalf("Present() error: %v", err)
	}
	if len(sink.grids) != 1 {
		t.Fatalf("grids sent = %d, want 1", len(sink.grids))
	}
	// Divider row alternates red flaps and blanks.
	g := sink.grids[0]
	red, _ := board.CharCode('R')
	if g[1][0] != red || g[1][1] != 0 || g[1][2] != red {
		t.Fatalf("row 1 = %v, want the red divider", g[1])
	}
}

func TestPresenterReturnsSendFailure(t *testing.T) {
	t.Parallel()
	reg := widgets.NewRegistry()
	reg.Register(stubWidget{rows: []string{"hello"}})
	sink := &captureSink{err: &transport.APIError{Status: 503, Msg: "down"}}
	p := &BoardPresenter{Widgets: reg, Sink: sink}

	err := p.Present(context.Background(), "stub", nil, "test")
	var apiErr *transport.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Present() error = %v, want APIError", err)
	}
}
