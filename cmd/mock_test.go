package main

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/outreach-cli/internal/outreach"
)

type mockCopywriter struct {
	mock.Mock
}

func (m *mockCopywriter) Opener(ctx context.Context, in outreach.OpenerInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *mockCopywriter) DeepDiveOpener(ctx context.Context, in outreach.DeepDiveInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *mockCopywriter) Subject(ctx context.Context, in outreach.SubjectInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}
