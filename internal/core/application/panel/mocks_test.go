package panel_test

import "github.com/stretchr/testify/mock"

type mockNavigator struct {
	mock.Mock
}

func (m *mockNavigator) Back() {
	m.Called()
}
