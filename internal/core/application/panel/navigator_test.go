package panel_test

import (
	"testing"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/application/panel"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestNavigatorOpenClose(t *testing.T) {
	t.Parallel()

	overlays := []domain.Panel{
		domain.PanelPinSetup,
		domain.PanelBackupPhraseDisplay,
		domain.PanelImportPhrase,
		domain.PanelElectrumOptions,
	}

	for _, p := range overlays {
		p := p
		t.Run(p.String(), func(t *testing.T) {
			t.Parallel()

			clock := panel.NewManualClock(startTime)
			nav, err := panel.NewNavigator(panel.NewController(clock), nil, duration)
			require.NoError(t, err)

			opened := false
			batch, err := nav.Open(p, func() error {
				opened = true
				return nil
			})
			require.NoError(t, err)
			require.Equal(t, p, nav.ActivePanel())

			clock.Advance(duration)
			nav.Controller().Step()
			requireDone(t, batch)
			require.True(t, opened)
			requireSteadyState(t, nav.Controller(), p)

			// Opening it again is a no-op.
			batch, err = nav.Open(p, nil)
			require.NoError(t, err)
			requireDone(t, batch)

			closed := false
			batch, err = nav.Close(p, func() error {
				closed = true
				return nil
			})
			require.NoError(t, err)

			clock.Advance(duration)
			nav.Controller().Step()
			requireDone(t, batch)
			require.True(t, closed)
			requireSteadyState(t, nav.Controller(), domain.PanelSettings)
		})
	}
}

func TestFailingNavigatorTransitions(t *testing.T) {
	t.Parallel()

	clock := panel.NewManualClock(startTime)
	nav, err := panel.NewNavigator(panel.NewController(clock), nil, duration)
	require.NoError(t, err)

	_, err = nav.Open(domain.PanelSettings, nil)
	require.ErrorIs(t, err, panel.ErrInvalidTransition)
	_, err = nav.Close(domain.PanelSettings, nil)
	require.ErrorIs(t, err, panel.ErrInvalidTransition)

	_, err = nav.Open(domain.PanelImportPhrase, nil)
	require.NoError(t, err)

	// No panel moves directly to another one other than settings.
	_, err = nav.Open(domain.PanelElectrumOptions, nil)
	require.ErrorIs(t, err, panel.ErrInvalidTransition)
	_, err = nav.Close(domain.PanelElectrumOptions, nil)
	require.ErrorIs(t, err, panel.ErrInvalidTransition)

	clock.Advance(duration)
	nav.Controller().Step()
	requireSteadyState(t, nav.Controller(), domain.PanelImportPhrase)
}

func TestNavigatorBack(t *testing.T) {
	t.Parallel()

	parent := &mockNavigator{}
	parent.On("Back").Return()

	clock := panel.NewManualClock(startTime)
	nav, err := panel.NewNavigator(panel.NewController(clock), parent, duration)
	require.NoError(t, err)

	_, err = nav.Open(domain.PanelElectrumOptions, nil)
	require.NoError(t, err)
	clock.Advance(duration)
	nav.Controller().Step()

	batch, err := nav.Back()
	require.NoError(t, err)
	require.NotNil(t, batch)
	clock.Advance(duration)
	nav.Controller().Step()
	requireDone(t, batch)
	requireSteadyState(t, nav.Controller(), domain.PanelSettings)
	parent.AssertNotCalled(t, "Back")

	batch, err = nav.Back()
	require.NoError(t, err)
	require.Nil(t, batch)
	parent.AssertNumberOfCalls(t, "Back", 1)
}

func TestNewNavigator(t *testing.T) {
	t.Parallel()

	_, err := panel.NewNavigator(nil, nil, duration)
	require.Error(t, err)

	_, err = panel.NewNavigator(panel.NewController(nil), nil, -duration)
	require.Error(t, err)
}
