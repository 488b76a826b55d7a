package runner

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"splitflap/internal/applog"
)

// Shutdown is the cooperative stop flag checked once per loop iteration.
// It is passed into the loop explicitly rather than living in a global.
type Shutdown struct {
	flag atomic.Bool
}

func NewShutdown() *Shutdown { return &Shutdown{} }

func (s *Shutdown) Request() { s.flag.Store(true) }

func (s *Shutdown) Requested() bool {
	if s == nil {
		return false
	}
	return s.flag.Load()
}

// NotifySignals requests shutdown when the process receives an interrupt
// or termination signal.
func (s *Shutdown) NotifySignals() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-ch
		applog.Infof("received signal %v, shutting down", sig)
		s.Request()
	}()
}
