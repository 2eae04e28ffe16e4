package panel

import (
	"fmt"
	"time"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/ports"
)

// Navigator drives the controller through the settings flow: every panel is
// reached from settings and goes back to settings.
type Navigator struct {
	controller *Controller
	parent     ports.Navigator
	duration   time.Duration
}

// NewNavigator returns a navigator crossfading panels in the given duration.
// The parent navigator is optional and handles the back action when no panel
// other than settings is open.
func NewNavigator(
	controller *Controller, parent ports.Navigator, duration time.Duration,
) (*Navigator, error) {
	if controller == nil {
		return nil, fmt.Errorf("missing panel controller")
	}
	if duration < 0 {
		return nil, fmt.Errorf("transition duration must not be negative")
	}
	return &Navigator{controller, parent, duration}, nil
}

// Controller ...
func (n *Navigator) Controller() *Controller {
	return n.controller
}

// Open moves from settings to the given panel. Opening the panel already
// open is a no-op.
func (n *Navigator) Open(p domain.Panel, onComplete func() error) (*Batch, error) {
	if !p.IsOverlay() {
		return nil, fmt.Errorf("%w: cannot open %s", ErrInvalidTransition, p)
	}
	if active, ok := n.controller.ActiveOverlay(); ok && active != p {
		return nil, fmt.Errorf(
			"%w: %s -> %s", ErrInvalidTransition, active, p,
		)
	}

	return n.controller.RequestTransitions(
		Transition{Panel: domain.PanelSettings, MakeActive: false, Duration: n.duration},
		Transition{Panel: p, MakeActive: true, Duration: n.duration, OnComplete: onComplete},
	)
}

// Close moves from the given panel back to settings.
func (n *Navigator) Close(p domain.Panel, onComplete func() error) (*Batch, error) {
	if !p.IsOverlay() {
		return nil, fmt.Errorf("%w: cannot close %s", ErrInvalidTransition, p)
	}
	if active, ok := n.controller.ActiveOverlay(); ok && active != p {
		return nil, fmt.Errorf(
			"%w: %s is not open, %s is", ErrInvalidTransition, p, active,
		)
	}

	return n.controller.RequestTransitions(
		Transition{Panel: p, MakeActive: false, Duration: n.duration, OnComplete: onComplete},
		Transition{Panel: domain.PanelSettings, MakeActive: true, Duration: n.duration},
	)
}

// Back closes the open panel, if any. Otherwise the action is delegated to
// the parent navigator and the returned batch is nil.
func (n *Navigator) Back() (*Batch, error) {
	active, ok := n.controller.ActiveOverlay()
	if !ok {
		if n.parent != nil {
			n.parent.Back()
		}
		return nil, nil
	}
	return n.Close(active, nil)
}

// ActivePanel returns the panel the user is on.
func (n *Navigator) ActivePanel() domain.Panel {
	if p, ok := n.controller.ActiveOverlay(); ok {
		return p
	}
	return domain.PanelSettings
}
