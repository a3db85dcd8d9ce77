package mock

import (
	context "context"
	reflect "reflect"

	models "github.com/dropforge/dropforge/dropforge/database/models"
	gomock "go.uber.org/mock/gomock"
)

// MockSaleRepository is a mock of SaleRepository interface.
type MockSaleRepository struct {
	ctrl     *gomock.Controller
	recorder *MockSaleRepositoryMockRecorder
	isgomock struct{}
}

// MockSaleRepositoryMockRecorder is the mock recorder for MockSaleRepository.
type MockSaleRepositoryMockRecorder struct {
	mock *MockSaleRepository
}

// NewMockSaleRepository creates a new mock instance.
func NewMockSaleRepository(ctrl *gomock.Controller) *MockSaleRepository {
	mock := &MockSaleRepository{ctrl: ctrl}
	mock.recorder = &MockSaleRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSaleRepository) EXPECT() *MockSaleRepositoryMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockSaleRepository) Create(ctx context.Context, sale *models.SaleRecord) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, sale)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockSaleRepositoryMockRecorder) Create(ctx, sale any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockSaleRepository)(nil).Create), ctx, sale)
}

// GetByAuctionID mocks base method.
func (m *MockSaleRepository) GetByAuctionID(ctx context.Context, auctionID int64) (*models.SaleRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByAuctionID", ctx, auctionID)
	ret0, _ := ret[0].(*models.SaleRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByAuctionID indicates an expected call of GetByAuctionID.
func (mr *MockSaleRepositoryMockRecorder) GetByAuctionID(ctx, auctionID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByAuctionID", reflect.TypeOf((*MockSaleRepository)(nil).GetByAuctionID), ctx, auctionID)
}

// GetByItemID mocks base method.
func (m *MockSaleRepository) GetByItemID(ctx context.Context, itemID int64) ([]*models.SaleRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByItemID", ctx, itemID)
	ret0, _ := ret[0].([]*models.SaleRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByItemID indicates an expected call of GetByItemID.
func (mr *MockSaleRepositoryMockRecorder) GetByItemID(ctx, itemID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByItemID", reflect.TypeOf((*MockSaleRepository)(nil).GetByItemID), ctx, itemID)
}

// SetMintTxRef mocks base method.
func (m *MockSaleRepository) SetMintTxRef(ctx context.Context, saleID, txRef string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetMintTxRef", ctx, saleID, txRef)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetMintTxRef indicates an expected call of SetMintTxRef.
func (mr *MockSaleRepositoryMockRecorder) SetMintTxRef(ctx, saleID, txRef any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetMintTxRef", reflect.TypeOf((*MockSaleRepository)(nil).SetMintTxRef), ctx, saleID, txRef)
}
