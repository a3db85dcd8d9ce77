package mock

import (
	context "context"
	reflect "reflect"
	time "time"

	gomock "go.uber.org/mock/gomock"
)

// MockLeaseRepository is a mock of LeaseRepository interface.
type MockLeaseRepository struct {
	ctrl     *gomock.Controller
	recorder *MockLeaseRepositoryMockRecorder
	isgomock struct{}
}

// MockLeaseRepositoryMockRecorder is the mock recorder for MockLeaseRepository.
type MockLeaseRepositoryMockRecorder struct {
	mock *MockLeaseRepository
}

// NewMockLeaseRepository creates a new mock instance.
func NewMockLeaseRepository(ctrl *gomock.Controller) *MockLeaseRepository {
	mock := &MockLeaseRepository{ctrl: ctrl}
	mock.recorder = &MockLeaseRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockLeaseRepository) EXPECT() *MockLeaseRepositoryMockRecorder {
	return m.recorder
}

// Acquire mocks base method.
func (m *MockLeaseRepository) Acquire(ctx context.Context, name, holder string, ttl time.Duration) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Acquire", ctx, name, holder, ttl)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Acquire indicates an expected call of Acquire.
func (mr *MockLeaseRepositoryMockRecorder) Acquire(ctx, name, holder, ttl any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Acquire", reflect.TypeOf((*MockLeaseRepository)(nil).Acquire), ctx, name, holder, ttl)
}

// Release mocks base method.
func (m *MockLeaseRepository) Release(ctx context.Context, name, holder string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Release", ctx, name, holder)
	ret0, _ := ret[0].(error)
	return ret0
}

// Release indicates an expected call of Release.
func (mr *MockLeaseRepositoryMockRecorder) Release(ctx, name, holder any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Release", reflect.TypeOf((*MockLeaseRepository)(nil).Release), ctx, name, holder)
}
