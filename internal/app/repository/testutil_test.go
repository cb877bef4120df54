package repository

import (
	"fmt"
	"testing"
	"time"

	"bidding/internal/app/ds"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRepo поднимает репозиторий на in-memory sqlite.
// _txlock=immediate берёт write-lock при старте транзакции, чтобы
// конкурентные транзакции сериализовались, а не падали по SQLITE_BUSY
func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000&_txlock=immediate", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo, err := NewWithDB(db)
	require.NoError(t, err)
	return repo
}

func seedUser(t *testing.T, r *Repository, name, email, roleStr string, balance float64) *ds.User {
	t.Helper()

	user := ds.User{
		Name:      name,
		Email:     email,
		Password:  "hashed",
		Role:      roleStr,
		Balance:   balance,
		CreatedAt: time.Now(),
	}
	require.NoError(t, r.db.Create(&user).Error)
	return &user
}

func seedProduct(t *testing.T, r *Repository, sellerID uint, price, commission float64, verified bool) *ds.Product {
	t.Helper()

	product := ds.Product{
		Title:      "лот",
		Price:      price,
		Commission: commission,
		SellerID:   sellerID,
		IsVerify:   verified,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, r.db.Create(&product).Error)
	return &product
}

func seedBid(t *testing.T, r *Repository, productID, bidderID uint, amount float64) *ds.Bid {
	t.Helper()

	bid := ds.Bid{
		ProductID: productID,
		BidderID:  bidderID,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
	require.NoError(t, r.db.Create(&bid).Error)
	return &bid
}
