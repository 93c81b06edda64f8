// Package mode resolves whether the service reads and writes the live store
// or the fixture set. The mode is fixed for the life of the process; changing
// the persisted override only takes effect after a restart.
package mode

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type Mode string

const (
	Live Mode = "live"
	Mock Mode = "mock"
)

func (m Mode) Mock() bool {
	return m == Mock
}

// OverrideStore persists the user-controlled mock override.
type OverrideStore interface {
	Get(ctx context.Context) (bool, error)
	Set(ctx context.Context, on bool) error
}

// State is the resolved mode plus the inputs it was resolved from.
type State struct {
	active Mode
	forced bool
	store  OverrideStore
}

// Resolve computes the process mode: mock when forced is set or the persisted
// override is on, live otherwise. An unreadable override counts as off.
func Resolve(ctx context.Context, forced bool, store OverrideStore, log *zap.Logger) *State {
	if log == nil {
		log = zap.NewNop()
	}
	override := false
	if store != nil {
		on, err := store.Get(ctx)
		if err != nil {
			log.Warn("read mode override", zap.Error(err))
		}
		override = on && err == nil
	}
	s := &State{active: pick(forced, override), forced: forced, store: store}
	log.Info("data mode resolved",
		zap.String("mode", string(s.active)),
		zap.Bool("forced", forced),
		zap.Bool("override", override),
	)
	return s
}

// Fixed returns a State pinned to m with no override store.
func Fixed(m Mode) *State {
	return &State{active: m, forced: m.Mock()}
}

func (s *State) Active() Mode {
	return s.active
}

// Notice describes the current and pending mode. ReloadRequired is set when
// the persisted configuration differs from the running one.
type Notice struct {
	Active         Mode   `json:"active"`
	Pending        Mode   `json:"pending"`
	Forced         bool   `json:"forced"`
	Override       bool   `json:"override"`
	ReloadRequired bool   `json:"reload_required"`
	Message        string `json:"message,omitempty"`
}

// Status reports the running mode and what a restart would resolve to.
func (s *State) Status(ctx context.Context) (Notice, error) {
	override := false
	if s.store != nil {
		on, err := s.store.Get(ctx)
		if err != nil {
			return Notice{}, fmt.Errorf("read mode override: %w", err)
		}
		override = on
	}
	return s.notice(override), nil
}

// SetOverride persists the override and reports whether a restart is needed.
// The running mode never changes.
func (s *State) SetOverride(ctx context.Context, on bool) (Notice, error) {
	if s.store == nil {
		return Notice{}, fmt.Errorf("mode override is not configured")
	}
	if err := s.store.Set(ctx, on); err != nil {
		return Notice{}, fmt.Errorf("save mode override: %w", err)
	}
	n := s.notice(on)
	if s.forced && !on {
		n.Message = "Mock data is enabled by the build configuration; clearing the override has no effect."
	}
	return n, nil
}

func (s *State) notice(override bool) Notice {
	n := Notice{
		Active:   s.active,
		Pending:  pick(s.forced, override),
		Forced:   s.forced,
		Override: override,
	}
	n.ReloadRequired = n.Pending != n.Active
	if n.ReloadRequired {
		n.Message = fmt.Sprintf("Data mode switches to %s after the service restarts.", n.Pending)
	}
	return n
}

func pick(forced, override bool) Mode {
	if forced || override {
		return Mock
	}
	return Live
}
