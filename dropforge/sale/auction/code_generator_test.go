package auction

import (
	"context"
	"testing"

	"github.com/dropforge/dropforge/dropforge/database/models"
	"github.com/dropforge/dropforge/dropforge/database/repositories/mock"
	"github.com/dropforge/dropforge/dropforge/sale/salerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBuildCodePrefix(t *testing.T) {
	tests := []struct {
		name string
		item string
		want string
	}{
		{name: "two words take initials", item: "Shadow Relic", want: "SR"},
		{name: "single word takes two letters", item: "Ember", want: "EM"},
		{name: "single letter padded", item: "X", want: "XX"},
		{name: "empty name falls back", item: "", want: "XX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildCodePrefix(tt.item))
		})
	}
}

func TestGenerateProducesUnusedCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	auctions := mock.NewMockAuctionRepository(ctrl)
	g := NewCodeGenerator(auctions)

	auctions.EXPECT().GetByCode(gomock.Any(), gomock.Any()).Return(nil, salerrors.ErrAuctionNotFound)

	code, err := g.Generate(context.Background(), &models.Item{Name: "Shadow Relic"})
	require.NoError(t, err)
	assert.Len(t, code, 5)
	assert.Equal(t, "SR", code[:2])
}

func TestGenerateRetriesOnCollision(t *testing.T) {
	ctrl := gomock.NewController(t)
	auctions := mock.NewMockAuctionRepository(ctrl)
	g := NewCodeGenerator(auctions)

	taken := auctions.EXPECT().
		GetByCode(gomock.Any(), gomock.Any()).
		Return(&models.Auction{ID: 1}, nil)
	auctions.EXPECT().
		GetByCode(gomock.Any(), gomock.Any()).
		Return(nil, salerrors.ErrAuctionNotFound).
		After(taken)

	code, err := g.Generate(context.Background(), &models.Item{Name: "Shadow Relic"})
	require.NoError(t, err)
	assert.NotEmpty(t, code)
}
