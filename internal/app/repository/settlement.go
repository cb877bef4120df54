package repository

import (
	"errors"
	"time"

	"bidding/internal/app/ds"

	"gorm.io/gorm"
)

// Виды записей журнала
const (
	KindPurchaseDebit    = "purchase_debit"
	KindSaleCredit       = "sale_credit"
	KindCommissionCredit = "commission_credit"
)

// SaleResult — итог расчёта по продаже
type SaleResult struct {
	Product        ds.Product
	WinningBid     ds.Bid
	AdminCut       float64
	SellerProceeds float64
}

// SellProduct продаёт лот победившей ставке и разносит деньги:
// победитель платит цену лота, продавец получает цену за вычетом
// комиссии, комиссия копится на аккаунте админа.
//
// Всё выполняется в одной транзакции БД, всё-или-ничего.
// Отметка о продаже ставится условным UPDATE (compare-and-set по
// is_soldout), поэтому из двух конкурентных продаж одного лота
// пройдёт ровно одна, вторая получит ErrAlreadySold
func (r *Repository) SellProduct(productID uint) (*SaleResult, error) {
	var result SaleResult

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

		var winning ds.Bid
		err := tx.Where("product_id = ?", productID).
			Order("amount DESC, created_at ASC").
			First(&winning).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoBids
			}
			return err
		}

		adminCut := product.Price * product.Commission / 100
		sellerProceeds := product.Price - adminCut

		// Compare-and-set: защищает от двойной продажи
		now := time.Now()
		res := tx.Model(&ds.Product{}).
			Where("id = ? AND is_verify = ? AND is_soldout = ?", productID, true, false).
			Updates(map[string]interface{}{
				"is_soldout":        true,
				"winning_bidder_id": winning.BidderID,
				"sold_at":           now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadySold
		}

		// Списываем с победителя только если баланс покрывает цену;
		// иначе вся транзакция откатывается, включая отметку о продаже
		res = tx.Model(&ds.User{}).
			Where("id = ? AND balance >= ?", winning.BidderID, product.Price).
			Update("balance", gorm.Expr("balance - ?", product.Price))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientFunds
		}

		res = tx.Model(&ds.User{}).
			Where("id = ?", product.SellerID).
			Update("balance", gorm.Expr("balance + ?", sellerProceeds))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		var admin ds.User
		if err := tx.Where("role = ?", "admin").First(&admin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAdminMissing
			}
			return err
		}
		if err := tx.Model(&ds.User{}).
			Where("id = ?", admin.ID).
			Update("commission_balance", gorm.Expr("commission_balance + ?", adminCut)).Error; err != nil {
			return err
		}

		// Журнал — в той же транзакции, что и кешированные балансы
		entries := []ds.LedgerEntry{
			{AccountID: winning.BidderID, ProductID: product.ID, Amount: -product.Price, Kind: KindPurchaseDebit, CreatedAt: now},
			{AccountID: product.SellerID, ProductID: product.ID, Amount: sellerProceeds, Kind: KindSaleCredit, CreatedAt: now},
			{AccountID: admin.ID, ProductID: product.ID, Amount: adminCut, Kind: KindCommissionCredit, CreatedAt: now},
		}
		if err := tx.Create(&entries).Error; err != nil {
			return err
		}

		product.IsSoldout = true
		product.WinningBidderID = &winning.BidderID
		product.SoldAt = &now
		result = SaleResult{
			Product:        product,
			WinningBid:     winning,
			AdminCut:       adminCut,
			SellerProceeds: sellerProceeds,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// EstimateIncome — накопленная комиссия площадки
func (r *Repository) EstimateIncome() (float64, error) {
	admin, err := r.GetAdmin()
	if err != nil {
		return 0, err
	}
	return admin.CommissionBalance, nil
}

// CommissionLedgerTotal — сумма комиссионных записей журнала.
// Должна совпадать с кешем на аккаунте админа
func (r *Repository) CommissionLedgerTotal() (float64, error) {
	var total float64
	err := r.db.Model(&ds.LedgerEntry{}).
		Where("kind = ?", KindCommissionCredit).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// LedgerForAccount — выписка по счёту пользователя
func (r *Repository) LedgerForAccount(accountID uint) ([]ds.LedgerEntry, error) {
	var entries []ds.LedgerEntry
	err := r.db.Where("account_id = ?", accountID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	return entries, err
}
