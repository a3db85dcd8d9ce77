package mock

import (
	context "context"
	reflect "reflect"
	time "time"

	models "github.com/dropforge/dropforge/dropforge/database/models"
	repositories "github.com/dropforge/dropforge/dropforge/database/repositories"
	gomock "go.uber.org/mock/gomock"
)

// MockTierRepository is a mock of TierRepository interface.
type MockTierRepository struct {
	ctrl     *gomock.Controller
	recorder *MockTierRepositoryMockRecorder
	isgomock struct{}
}

// MockTierRepositoryMockRecorder is the mock recorder for MockTierRepository.
type MockTierRepositoryMockRecorder struct {
	mock *MockTierRepository
}

// NewMockTierRepository creates a new mock instance.
func NewMockTierRepository(ctrl *gomock.Controller) *MockTierRepository {
	mock := &MockTierRepository{ctrl: ctrl}
	mock.recorder = &MockTierRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTierRepository) EXPECT() *MockTierRepositoryMockRecorder {
	return m.recorder
}

// Activate mocks base method.
func (m *MockTierRepository) Activate(ctx context.Context, phase int, now time.Time, updates []repositories.PriceUpdate, chunkSize int) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Activate", ctx, phase, now, updates, chunkSize)
	ret0, _ := ret[0].(error)
	return ret0
}

// Activate indicates an expected call of Activate.
func (mr *MockTierRepositoryMockRecorder) Activate(ctx, phase, now, updates, chunkSize any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Activate", reflect.TypeOf((*MockTierRepository)(nil).Activate), ctx, phase, now, updates, chunkSize)
}

// AdvanceTier mocks base method.
func (m *MockTierRepository) AdvanceTier(ctx context.Context, currentID int64, nextPhase int, now time.Time, updates []repositories.PriceUpdate, chunkSize int) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AdvanceTier", ctx, currentID, nextPhase, now, updates, chunkSize)
	ret0, _ := ret[0].(error)
	return ret0
}

// AdvanceTier indicates an expected call of AdvanceTier.
func (mr *MockTierRepositoryMockRecorder) AdvanceTier(ctx, currentID, nextPhase, now, updates, chunkSize any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AdvanceTier", reflect.TypeOf((*MockTierRepository)(nil).AdvanceTier), ctx, currentID, nextPhase, now, updates, chunkSize)
}

// GetActive mocks base method.
func (m *MockTierRepository) GetActive(ctx context.Context) (*models.Tier, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetActive", ctx)
	ret0, _ := ret[0].(*models.Tier)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetActive indicates an expected call of GetActive.
func (mr *MockTierRepositoryMockRecorder) GetActive(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetActive", reflect.TypeOf((*MockTierRepository)(nil).GetActive), ctx)
}

// GetByPhase mocks base method.
func (m *MockTierRepository) GetByPhase(ctx context.Context, phase int) (*models.Tier, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByPhase", ctx, phase)
	ret0, _ := ret[0].(*models.Tier)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByPhase indicates an expected call of GetByPhase.
func (mr *MockTierRepositoryMockRecorder) GetByPhase(ctx, phase any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByPhase", reflect.TypeOf((*MockTierRepository)(nil).GetByPhase), ctx, phase)
}

// IncrementSold mocks base method.
func (m *MockTierRepository) IncrementSold(ctx context.Context, tierID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IncrementSold", ctx, tierID)
	ret0, _ := ret[0].(error)
	return ret0
}

// IncrementSold indicates an expected call of IncrementSold.
func (mr *MockTierRepositoryMockRecorder) IncrementSold(ctx, tierID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IncrementSold", reflect.TypeOf((*MockTierRepository)(nil).IncrementSold), ctx, tierID)
}
