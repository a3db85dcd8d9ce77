package mock

import (
	context "context"
	reflect "reflect"

	models "github.com/dropforge/dropforge/dropforge/database/models"
	gomock "go.uber.org/mock/gomock"
)

// MockItemRepository is a mock of ItemRepository interface.
type MockItemRepository struct {
	ctrl     *gomock.Controller
	recorder *MockItemRepositoryMockRecorder
	isgomock struct{}
}

// MockItemRepositoryMockRecorder is the mock recorder for MockItemRepository.
type MockItemRepositoryMockRecorder struct {
	mock *MockItemRepository
}

// NewMockItemRepository creates a new mock instance.
func NewMockItemRepository(ctrl *gomock.Controller) *MockItemRepository {
	mock := &MockItemRepository{ctrl: ctrl}
	mock.recorder = &MockItemRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockItemRepository) EXPECT() *MockItemRepositoryMockRecorder {
	return m.recorder
}

// BulkCreate mocks base method.
func (m *MockItemRepository) BulkCreate(ctx context.Context, items []*models.Item) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BulkCreate", ctx, items)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// BulkCreate indicates an expected call of BulkCreate.
func (mr *MockItemRepositoryMockRecorder) BulkCreate(ctx, items any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BulkCreate", reflect.TypeOf((*MockItemRepository)(nil).BulkCreate), ctx, items)
}

// Create mocks base method.
func (m *MockItemRepository) Create(ctx context.Context, item *models.Item) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, item)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockItemRepositoryMockRecorder) Create(ctx, item any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockItemRepository)(nil).Create), ctx, item)
}

// CurrentPrice mocks base method.
func (m *MockItemRepository) CurrentPrice(ctx context.Context, id int64) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CurrentPrice", ctx, id)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CurrentPrice indicates an expected call of CurrentPrice.
func (mr *MockItemRepositoryMockRecorder) CurrentPrice(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CurrentPrice", reflect.TypeOf((*MockItemRepository)(nil).CurrentPrice), ctx, id)
}

// GetByID mocks base method.
func (m *MockItemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*models.Item)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockItemRepositoryMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockItemRepository)(nil).GetByID), ctx, id)
}

// GetByName mocks base method.
func (m *MockItemRepository) GetByName(ctx context.Context, name string) (*models.Item, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByName", ctx, name)
	ret0, _ := ret[0].(*models.Item)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByName indicates an expected call of GetByName.
func (mr *MockItemRepositoryMockRecorder) GetByName(ctx, name any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByName", reflect.TypeOf((*MockItemRepository)(nil).GetByName), ctx, name)
}

// GetByStatus mocks base method.
func (m *MockItemRepository) GetByStatus(ctx context.Context, status models.ItemStatus) ([]*models.Item, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByStatus", ctx, status)
	ret0, _ := ret[0].([]*models.Item)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByStatus indicates an expected call of GetByStatus.
func (mr *MockItemRepositoryMockRecorder) GetByStatus(ctx, status any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByStatus", reflect.TypeOf((*MockItemRepository)(nil).GetByStatus), ctx, status)
}

// MarkSold mocks base method.
func (m *MockItemRepository) MarkSold(ctx context.Context, id int64, buyerID string, sale *models.SaleRecord) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkSold", ctx, id, buyerID, sale)
	ret0, _ := ret[0].(error)
	return ret0
}

// MarkSold indicates an expected call of MarkSold.
func (mr *MockItemRepositoryMockRecorder) MarkSold(ctx, id, buyerID, sale any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkSold", reflect.TypeOf((*MockItemRepository)(nil).MarkSold), ctx, id, buyerID, sale)
}

// PurgePriceCache mocks base method.
func (m *MockItemRepository) PurgePriceCache() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "PurgePriceCache")
}

// PurgePriceCache indicates an expected call of PurgePriceCache.
func (mr *MockItemRepositoryMockRecorder) PurgePriceCache() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PurgePriceCache", reflect.TypeOf((*MockItemRepository)(nil).PurgePriceCache))
}

// Release mocks base method.
func (m *MockItemRepository) Release(ctx context.Context, id int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Release", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Release indicates an expected call of Release.
func (mr *MockItemRepositoryMockRecorder) Release(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Release", reflect.TypeOf((*MockItemRepository)(nil).Release), ctx, id)
}

// Reserve mocks base method.
func (m *MockItemRepository) Reserve(ctx context.Context, id int64, buyerID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Reserve", ctx, id, buyerID)
	ret0, _ := ret[0].(error)
	return ret0
}

// Reserve indicates an expected call of Reserve.
func (mr *MockItemRepositoryMockRecorder) Reserve(ctx, id, buyerID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reserve", reflect.TypeOf((*MockItemRepository)(nil).Reserve), ctx, id, buyerID)
}

// SetMintResult mocks base method.
func (m *MockItemRepository) SetMintResult(ctx context.Context, id int64, status models.ItemStatus, txHash string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetMintResult", ctx, id, status, txHash)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetMintResult indicates an expected call of SetMintResult.
func (mr *MockItemRepositoryMockRecorder) SetMintResult(ctx, id, status, txHash any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetMintResult", reflect.TypeOf((*MockItemRepository)(nil).SetMintResult), ctx, id, status, txHash)
}

// SuggestClosestName mocks base method.
func (m *MockItemRepository) SuggestClosestName(ctx context.Context, name string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SuggestClosestName", ctx, name)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SuggestClosestName indicates an expected call of SuggestClosestName.
func (mr *MockItemRepositoryMockRecorder) SuggestClosestName(ctx, name any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SuggestClosestName", reflect.TypeOf((*MockItemRepository)(nil).SuggestClosestName), ctx, name)
}
