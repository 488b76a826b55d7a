package runner

import (
	"context"
	"encoding/json"

	"splitflap/internal/applog"
	"splitflap/internal/board"
	"splitflap/internal/transport"
	"splitflap/internal/widgets"
)

// Presenter turns one content item into a board update. Engines depend on
// this narrow contract so tests can record emissions without a device.
type Presenter interface {
	Present(ctx context.Context, widget string, input json.RawMessage, label string) error
}

// BoardPresenter generates rows through the widget registry, encodes them,
// and hands the grid to a sink. Generation failures degrade to the board's
// error layout instead of leaving stale content up.
type BoardPresenter struct {
	Widgets *widgets.Registry
	Sink    transport.Sink
}

func (p *BoardPresenter) Present(ctx context.Context, widget string, input json.RawMessage, label string) error {
	rows, err := p.Widgets.Generate(ctx, widget, input)
	if err != nil {
		applog.Errorf("%s: %v", label, err)
		rows = board.ErrorDisplay(err)
	}

	grid, err := board.Encode(rows)
	if err != nil {
		applog.Errorf("%s: %v", label, err)
		grid, _ = board.Encode(board.ErrorDisplay(err))
	}

	if err := p.Sink.Send(ctx, grid); err != nil {
		applog.Errorf("%s: send failed: %v", label, err)
		return err
	}
	applog.Infof("%s: sent via %s", label, p.Sink.Name())
	return nil
}
