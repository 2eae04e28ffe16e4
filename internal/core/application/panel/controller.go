package panel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

// Controller animates the opacity crossfades between panels. A panel is
// active from the moment it's requested to be so, while its visibility and
// opacity follow the animation.
type Controller struct {
	clock Clock

	lock   sync.Mutex
	panels map[domain.Panel]*panelState

	subLock     sync.Mutex
	subscribers map[string]chan []State
}

// NewController returns a controller with the settings panel active and
// every other one hidden.
func NewController(clock Clock) *Controller {
	if clock == nil {
		clock = SystemClock{}
	}

	panels := make(map[domain.Panel]*panelState, len(domain.Panels))
	for _, p := range domain.Panels {
		panels[p] = &panelState{}
	}
	panels[domain.PanelSettings] = &panelState{
		active: true, visible: true, opacity: 1,
	}

	return &Controller{
		clock:       clock,
		panels:      panels,
		subscribers: make(map[string]chan []State),
	}
}

// RequestTransitions animates in parallel every given transition. Those
// targeting a panel already in the requested state are skipped. A panel with
// an in-flight animation is retargeted from its current opacity, and the
// batch that animation belonged to stops waiting for it.
func (c *Controller) RequestTransitions(transitions ...Transition) (*Batch, error) {
	if len(transitions) <= 0 {
		return nil, ErrMissingTransitions
	}
	for _, t := range transitions {
		if !t.Panel.IsValid() {
			return nil, fmt.Errorf("%w: %d", domain.ErrInvalidPanel, t.Panel)
		}
	}

	batch := newBatch(uuid.New().String())
	now := c.clock.Now()
	superseded := make([]*Batch, 0)

	c.lock.Lock()
	for _, t := range transitions {
		ps := c.panels[t.Panel]
		if ps.active == t.MakeActive {
			continue
		}

		from := ps.opacityAt(now)
		if ps.anim != nil {
			old := ps.anim.batch
			old.pending--
			if old != batch && old.pending == 0 {
				superseded = append(superseded, old)
			}
		}

		to := 0.0
		if t.MakeActive {
			to = 1
			ps.visible = true
		}
		duration := t.Duration
		if duration < 0 {
			duration = 0
		}

		ps.active = t.MakeActive
		ps.opacity = from
		ps.anim = &animation{
			from:      from,
			to:        to,
			startedAt: now,
			duration:  duration,
			batch:     batch,
		}
		batch.pending++
		if t.OnComplete != nil {
			batch.callbacks = append(batch.callbacks, t.OnComplete)
		}
	}
	noop := batch.pending == 0
	c.lock.Unlock()

	for _, b := range superseded {
		c.complete(b)
	}

	if noop {
		log.Debugf("panel transitions batch %s is a no-op", batch.ID)
		c.complete(batch)
		return batch, nil
	}

	c.Step()
	return batch, nil
}

// Step settles every animation that is over at the current time. Panels
// that became inactive are hidden, and the callbacks of every completed batch
// are called.
func (c *Controller) Step() {
	now := c.clock.Now()
	completed := make([]*Batch, 0)
	changed := false

	c.lock.Lock()
	for _, p := range domain.Panels {
		ps := c.panels[p]
		if ps.anim == nil {
			continue
		}
		changed = true
		if !ps.anim.isOver(now) {
			continue
		}

		ps.opacity = ps.anim.to
		if !ps.active {
			ps.visible = false
		}
		b := ps.anim.batch
		ps.anim = nil
		b.pending--
		if b.pending == 0 {
			completed = append(completed, b)
		}
	}
	states := c.snapshot(now)
	c.lock.Unlock()

	for _, b := range completed {
		c.complete(b)
	}
	if changed {
		c.publish(states)
	}
}

// Run steps the controller every frame until the context is canceled.
func (c *Controller) Run(ctx context.Context, frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	log.Debugln("panel animation loop started")
	for {
		select {
		case <-ctx.Done():
			log.Debugln("panel animation loop stopped")
			return
		case <-ticker.C:
			c.Step()
		}
	}
}

// Snapshot returns the state of every panel at the current time.
func (c *Controller) Snapshot() []State {
	now := c.clock.Now()

	c.lock.Lock()
	defer c.lock.Unlock()
	return c.snapshot(now)
}

// IsActive ...
func (c *Controller) IsActive(p domain.Panel) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	ps, ok := c.panels[p]
	return ok && ps.active
}

// ActiveOverlay returns the open panel other than settings, if any.
func (c *Controller) ActiveOverlay() (domain.Panel, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	for _, p := range domain.Panels {
		if p.IsOverlay() && c.panels[p].active {
			return p, true
		}
	}
	return domain.PanelSettings, false
}

// IsSettled returns whether no animation is in progress.
func (c *Controller) IsSettled() bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	for _, ps := range c.panels {
		if ps.anim != nil {
			return false
		}
	}
	return true
}

// Subscribe returns a channel notified with the panels' states at every
// change. Slow readers only get the latest states. The returned function
// must be called to release the subscription.
func (c *Controller) Subscribe() (<-chan []State, func()) {
	id := uuid.New().String()
	ch := make(chan []State, 1)

	c.subLock.Lock()
	c.subscribers[id] = ch
	c.subLock.Unlock()

	return ch, func() {
		c.subLock.Lock()
		defer c.subLock.Unlock()
		if _, ok := c.subscribers[id]; ok {
			delete(c.subscribers, id)
			close(ch)
		}
	}
}

func (c *Controller) snapshot(now time.Time) []State {
	states := make([]State, 0, len(domain.Panels))
	for _, p := range domain.Panels {
		ps := c.panels[p]
		states = append(states, State{
			Panel:   p,
			Active:  ps.active,
			Visible: ps.visible,
			Opacity: ps.opacityAt(now),
		})
	}
	return states
}

func (c *Controller) complete(b *Batch) {
	for i, cb := range b.callbacks {
		if err := safeCall(cb); err != nil {
			log.WithError(err).Warnf(
				"callback %d of panel transitions batch %s failed", i, b.ID,
			)
			b.addErr(err)
		}
	}
	close(b.done)
}

func (c *Controller) publish(states []State) {
	c.subLock.Lock()
	defer c.subLock.Unlock()

	for _, ch := range c.subscribers {
		select {
		case ch <- states:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- states:
			default:
			}
		}
	}
}

func safeCall(cb func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return cb()
}
