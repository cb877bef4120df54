package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceBidRules(t *testing.T) {
	r := newTestRepo(t)

	seller := seedUser(t, r, "seller", "seller@test.ru", "seller", 0)
	buyer := seedUser(t, r, "buyer", "buyer@test.ru", "buyer", 1000)
	rival := seedUser(t, r, "rival", "rival@test.ru", "buyer", 1000)

	product := seedProduct(t, r, seller.ID, 100, 10, true)

	// ниже стартовой цены
	_, err := r.PlaceBid(product.ID, buyer.ID, 50)
	require.ErrorIs(t, err, ErrLowBid)

	// продавец на своём лоте
	_, err = r.PlaceBid(product.ID, seller.ID, 200)
	require.ErrorIs(t, err, ErrOwnProduct)

	// первая валидная ставка
	first, err := r.PlaceBid(product.ID, buyer.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 100.0, first.Amount)

	// не выше текущего максимума
	_, err = r.PlaceBid(product.ID, rival.ID, 100)
	require.ErrorIs(t, err, ErrLowBid)

	// перебивает
	second, err := r.PlaceBid(product.ID, rival.ID, 150)
	require.NoError(t, err)

	highest, err := r.GetHighestBid(product.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, highest.ID)

	bids, err := r.GetBidsForProduct(product.ID)
	require.NoError(t, err)
	require.Len(t, bids, 2)
	assert.Equal(t, 150.0, bids[0].Amount) // максимальная первой
}

func TestPlaceBidOnUnverifiedProduct(t *testing.T) {
	r := newTestRepo(t)

	seller := seedUser(t, r, "seller", "seller@test.ru", "seller", 0)
	buyer := seedUser(t, r, "buyer", "buyer@test.ru", "buyer", 1000)

	product := seedProduct(t, r, seller.ID, 100, 10, false)

	_, err := r.PlaceBid(product.ID, buyer.ID, 150)
	require.ErrorIs(t, err, ErrNotVerified)
}

func TestPlaceBidOnSoldProduct(t *testing.T) {
	r := newTestRepo(t)

	seedUser(t, r, "admin", "admin@test.ru", "admin", 0)
	seller := seedUser(t, r, "seller", "seller@test.ru", "seller", 0)
	buyer := seedUser(t, r, "buyer", "buyer@test.ru", "buyer", 1000)
	late := seedUser(t, r, "late", "late@test.ru", "buyer", 1000)

	product := seedProduct(t, r, seller.ID, 100, 10, true)
	seedBid(t, r, product.ID, buyer.ID, 100)

	_, err := r.SellProduct(product.ID)
	require.NoError(t, err)

	_, err = r.PlaceBid(product.ID, late.ID, 500)
	require.ErrorIs(t, err, ErrAlreadySold)
}

func TestGetHighestBidNoBids(t *testing.T) {
	r := newTestRepo(t)

	seller := seedUser(t, r, "seller", "seller@test.ru", "seller", 0)
	product := seedProduct(t, r, seller.ID, 100, 10, true)

	_, err := r.GetHighestBid(product.ID)
	require.ErrorIs(t, err, ErrNoBids)
}
