package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, subject, body string, to []string) error {
	args := m.Called(ctx, subject, body, to)
	return args.Error(0)
}
