package db_test

import (
	"errors"
	"testing"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepositoryImplementations(t *testing.T) {
	repositories := createRepoManagers(t)

	for i := range repositories {
		repo := repositories[i]

		t.Run(repo.Name, func(t *testing.T) {
			t.Parallel()
			testSettingsRepository(t, repo.RepoManager.SettingsRepository())
		})
	}
}

func testSettingsRepository(t *testing.T, repo domain.SettingsRepository) {
	settings, err := repo.GetSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.NewSettings(), settings)

	peer := domain.Peer{Host: "electrum.example.com", Port: 50002, Protocol: "ssl"}
	err = repo.UpdateSettings(
		ctx, func(s *domain.Settings) (*domain.Settings, error) {
			s, err := s.WithCustomPeer(domain.Litecoin, peer)
			if err != nil {
				return nil, err
			}
			s = s.WithCurrentPeer(domain.Litecoin, peer)
			return s.WithToggle(domain.ToggleBiometrics, true)
		},
	)
	require.NoError(t, err)

	err = repo.UpdateSettings(
		ctx, func(s *domain.Settings) (*domain.Settings, error) {
			s.RBF = false
			return nil, errors.New("rollback")
		},
	)
	require.Error(t, err)

	settings, err = repo.GetSettings(ctx)
	require.NoError(t, err)
	require.True(t, settings.Biometrics)
	require.True(t, settings.RBF)
	require.Equal(t, []domain.Peer{peer}, settings.CustomPeers[domain.Litecoin])
	require.Equal(t, peer, settings.CurrentPeer[domain.Litecoin])
}
