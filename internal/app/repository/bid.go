package repository

import (
	"errors"
	"time"

	"bidding/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для работы со ставками

// PlaceBid принимает ставку на живой лот.
// Проверка "выше текущего максимума" выполняется в той же транзакции,
// что и вставка, чтобы две одинаковые ставки не прошли одновременно
func (r *Repository) PlaceBid(productID, bidderID uint, amount float64) (*ds.Bid, error) {
	var bid ds.Bid

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var product ds.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if !product.IsVerify {
			return ErrNotVerified
		}
		if product.IsSoldout {
			return ErrAlreadySold
		}
		if product.SellerID == bidderID {
			return ErrOwnProduct
		}
		if amount < product.Price {
			return ErrLowBid
		}

		var highest ds.Bid
		err := tx.Where("product_id = ?", productID).
			Order("amount DESC, created_at ASC").
			First(&highest).Error
		if err == nil && amount <= highest.Amount {
			return ErrLowBid
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		bid = ds.Bid{
			ProductID: productID,
			BidderID:  bidderID,
			Amount:    amount,
			CreatedAt: time.Now(),
		}
		return tx.Create(&bid).Error
	})
	if err != nil {
		return nil, err
	}

	return &bid, nil
}

// GetBidsForProduct — история ставок, максимальная первой
func (r *Repository) GetBidsForProduct(productID uint) ([]ds.Bid, error) {
	var bids []ds.Bid
	err := r.db.Where("product_id = ?", productID).
		Order("amount DESC, created_at ASC").
		Find(&bids).Error
	return bids, err
}

func (r *Repository) GetHighestBid(productID uint) (*ds.Bid, error) {
	var bid ds.Bid
	err := r.db.Where("product_id = ?", productID).
		Order("amount DESC, created_at ASC").
		First(&bid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoBids
		}
		return nil, err
	}
	return &bid, nil
}
