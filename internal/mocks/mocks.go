// Package mocks provides hand-written testify doubles for the service-layer
// ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"threatScoringBackend/internal/core/domain"
	"threatScoringBackend/internal/port"
)

type MockSessionStore struct {
	mock.Mock
}

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{}
}

func (m *MockSessionStore) Save(ctx context.Context, session domain.AttackSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionStore) Update(ctx context.Context, session domain.AttackSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionStore) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockSessionStore) Get(ctx context.Context, sessionID string) (domain.AttackSession, error) {
	args := m.Called(ctx, sessionID)
	session, _ := args.Get(0).(domain.AttackSession)
	return session, args.Error(1)
}

func (m *MockSessionStore) List(ctx context.Context, filter port.SessionFilter) ([]domain.AttackSession, error) {
	args := m.Called(ctx, filter)
	sessions, _ := args.Get(0).([]domain.AttackSession)
	return sessions, args.Error(1)
}

var _ port.SessionStore = (*MockSessionStore)(nil)

type MockHashService struct {
	mock.Mock
}

func NewMockHashService() *MockHashService {
	return &MockHashService{}
}

func (m *MockHashService) Identify(hash string) domain.HashType {
	args := m.Called(hash)
	hashType, _ := args.Get(0).(domain.HashType)
	return hashType
}

func (m *MockHashService) Verify(password, hash string, hashType domain.HashType) (bool, error) {
	args := m.Called(password, hash, hashType)
	return args.Bool(0), args.Error(1)
}

func (m *MockHashService) Generate(password string, hashType domain.HashType) (string, error) {
	args := m.Called(password, hashType)
	return args.String(0), args.Error(1)
}

var _ port.HashService = (*MockHashService)(nil)
