package panel

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
)

var (
	// ErrInvalidTransition is returned when trying to move between two panels
	// other than settings, or to close a panel that is not open.
	ErrInvalidTransition = errors.New("invalid panel transition")
	// ErrMissingTransitions ...
	ErrMissingTransitions = errors.New("missing transitions")
)

// Transition is a request to make a panel active or inactive.
type Transition struct {
	Panel      domain.Panel
	MakeActive bool
	Duration   time.Duration
	// OnComplete, if defined, is called once every transition of the batch
	// has settled.
	OnComplete func() error
}

// State is the visibility of a panel at a given moment.
type State struct {
	Panel   domain.Panel `json:"panel"`
	Active  bool         `json:"active"`
	Visible bool         `json:"visible"`
	Opacity float64      `json:"opacity"`
}

// Batch tracks a group of transitions animated together.
type Batch struct {
	ID string

	lock      sync.Mutex
	pending   int
	callbacks []func() error
	errs      []error
	done      chan struct{}
}

func newBatch(id string) *Batch {
	return &Batch{ID: id, done: make(chan struct{})}
}

// Done returns a channel closed once every transition has settled and every
// callback has been called.
func (b *Batch) Done() <-chan struct{} {
	return b.done
}

// Wait blocks until the batch is done or the context is canceled.
func (b *Batch) Wait(ctx context.Context) error {
	select {
	case <-b.done:
		return b.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the errors of the failed callbacks, if any.
func (b *Batch) Err() error {
	b.lock.Lock()
	defer b.lock.Unlock()
	return errors.Join(b.errs...)
}

func (b *Batch) addErr(err error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.errs = append(b.errs, err)
}

// animation is an in-flight opacity change of a panel. Opacity is a pure
// function of the elapsed time.
type animation struct {
	from      float64
	to        float64
	startedAt time.Time
	duration  time.Duration
	batch     *Batch
}

func (a animation) opacityAt(now time.Time) float64 {
	if a.isOver(now) {
		return a.to
	}
	elapsed := now.Sub(a.startedAt)
	if elapsed <= 0 {
		return a.from
	}
	progress := float64(elapsed) / float64(a.duration)
	return a.from + (a.to-a.from)*progress
}

func (a animation) isOver(now time.Time) bool {
	return a.duration <= 0 || !now.Before(a.startedAt.Add(a.duration))
}

type panelState struct {
	active  bool
	visible bool
	opacity float64
	anim    *animation
}

func (p *panelState) opacityAt(now time.Time) float64 {
	if p.anim == nil {
		return p.opacity
	}
	return p.anim.opacityAt(now)
}
