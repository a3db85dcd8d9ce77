package mock

import (
	context "context"
	reflect "reflect"
	time "time"

	models "github.com/dropforge/dropforge/dropforge/database/models"
	gomock "go.uber.org/mock/gomock"
)

// MockAuctionRepository is a mock of AuctionRepository interface.
type MockAuctionRepository struct {
	ctrl     *gomock.Controller
	recorder *MockAuctionRepositoryMockRecorder
	isgomock struct{}
}

// MockAuctionRepositoryMockRecorder is the mock recorder for MockAuctionRepository.
type MockAuctionRepositoryMockRecorder struct {
	mock *MockAuctionRepository
}

// NewMockAuctionRepository creates a new mock instance.
func NewMockAuctionRepository(ctrl *gomock.Controller) *MockAuctionRepository {
	mock := &MockAuctionRepository{ctrl: ctrl}
	mock.recorder = &MockAuctionRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAuctionRepository) EXPECT() *MockAuctionRepositoryMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockAuctionRepository) Create(ctx context.Context, auction *models.Auction) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, auction)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockAuctionRepositoryMockRecorder) Create(ctx, auction any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockAuctionRepository)(nil).Create), ctx, auction)
}

// EndNoBids mocks base method.
func (m *MockAuctionRepository) EndNoBids(ctx context.Context, auctionID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EndNoBids", ctx, auctionID)
	ret0, _ := ret[0].(error)
	return ret0
}

// EndNoBids indicates an expected call of EndNoBids.
func (mr *MockAuctionRepositoryMockRecorder) EndNoBids(ctx, auctionID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EndNoBids", reflect.TypeOf((*MockAuctionRepository)(nil).EndNoBids), ctx, auctionID)
}

// Extend mocks base method.
func (m *MockAuctionRepository) Extend(ctx context.Context, auctionID int64, newEnd time.Time, triggeringBidID int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Extend", ctx, auctionID, newEnd, triggeringBidID)
	ret0, _ := ret[0].(error)
	return ret0
}

// Extend indicates an expected call of Extend.
func (mr *MockAuctionRepositoryMockRecorder) Extend(ctx, auctionID, newEnd, triggeringBidID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Extend", reflect.TypeOf((*MockAuctionRepository)(nil).Extend), ctx, auctionID, newEnd, triggeringBidID)
}

// FinalizeWinner mocks base method.
func (m *MockAuctionRepository) FinalizeWinner(ctx context.Context, auctionID int64, sale *models.SaleRecord) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FinalizeWinner", ctx, auctionID, sale)
	ret0, _ := ret[0].(error)
	return ret0
}

// FinalizeWinner indicates an expected call of FinalizeWinner.
func (mr *MockAuctionRepositoryMockRecorder) FinalizeWinner(ctx, auctionID, sale any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FinalizeWinner", reflect.TypeOf((*MockAuctionRepository)(nil).FinalizeWinner), ctx, auctionID, sale)
}

// GetActive mocks base method.
func (m *MockAuctionRepository) GetActive(ctx context.Context) ([]*models.Auction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetActive", ctx)
	ret0, _ := ret[0].([]*models.Auction)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetActive indicates an expected call of GetActive.
func (mr *MockAuctionRepositoryMockRecorder) GetActive(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetActive", reflect.TypeOf((*MockAuctionRepository)(nil).GetActive), ctx)
}

// GetActiveEndingBefore mocks base method.
func (m *MockAuctionRepository) GetActiveEndingBefore(ctx context.Context, t time.Time) ([]*models.Auction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetActiveEndingBefore", ctx, t)
	ret0, _ := ret[0].([]*models.Auction)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetActiveEndingBefore indicates an expected call of GetActiveEndingBefore.
func (mr *MockAuctionRepositoryMockRecorder) GetActiveEndingBefore(ctx, t any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetActiveEndingBefore", reflect.TypeOf((*MockAuctionRepository)(nil).GetActiveEndingBefore), ctx, t)
}

// GetByCode mocks base method.
func (m *MockAuctionRepository) GetByCode(ctx context.Context, code string) (*models.Auction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByCode", ctx, code)
	ret0, _ := ret[0].(*models.Auction)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByCode indicates an expected call of GetByCode.
func (mr *MockAuctionRepositoryMockRecorder) GetByCode(ctx, code any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByCode", reflect.TypeOf((*MockAuctionRepository)(nil).GetByCode), ctx, code)
}

// GetByID mocks base method.
func (m *MockAuctionRepository) GetByID(ctx context.Context, id int64) (*models.Auction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*models.Auction)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockAuctionRepositoryMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockAuctionRepository)(nil).GetByID), ctx, id)
}

// GetExpiredActive mocks base method.
func (m *MockAuctionRepository) GetExpiredActive(ctx context.Context, now time.Time) ([]*models.Auction, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetExpiredActive", ctx, now)
	ret0, _ := ret[0].([]*models.Auction)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetExpiredActive indicates an expected call of GetExpiredActive.
func (mr *MockAuctionRepositoryMockRecorder) GetExpiredActive(ctx, now any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetExpiredActive", reflect.TypeOf((*MockAuctionRepository)(nil).GetExpiredActive), ctx, now)
}

// GetLatestBid mocks base method.
func (m *MockAuctionRepository) GetLatestBid(ctx context.Context, auctionID int64) (*models.AuctionBid, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetLatestBid", ctx, auctionID)
	ret0, _ := ret[0].(*models.AuctionBid)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetLatestBid indicates an expected call of GetLatestBid.
func (mr *MockAuctionRepositoryMockRecorder) GetLatestBid(ctx, auctionID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetLatestBid", reflect.TypeOf((*MockAuctionRepository)(nil).GetLatestBid), ctx, auctionID)
}

// HasOpenAuctionForItem mocks base method.
func (m *MockAuctionRepository) HasOpenAuctionForItem(ctx context.Context, itemID int64) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HasOpenAuctionForItem", ctx, itemID)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// HasOpenAuctionForItem indicates an expected call of HasOpenAuctionForItem.
func (mr *MockAuctionRepositoryMockRecorder) HasOpenAuctionForItem(ctx, itemID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HasOpenAuctionForItem", reflect.TypeOf((*MockAuctionRepository)(nil).HasOpenAuctionForItem), ctx, itemID)
}

// RecordBid mocks base method.
func (m *MockAuctionRepository) RecordBid(ctx context.Context, bid *models.AuctionBid, expectedBidCents int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RecordBid", ctx, bid, expectedBidCents)
	ret0, _ := ret[0].(error)
	return ret0
}

// RecordBid indicates an expected call of RecordBid.
func (mr *MockAuctionRepositoryMockRecorder) RecordBid(ctx, bid, expectedBidCents any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecordBid", reflect.TypeOf((*MockAuctionRepository)(nil).RecordBid), ctx, bid, expectedBidCents)
}
