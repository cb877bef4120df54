package ds

import "time"

// 5. Журнал денежных операций (append-only)
// Балансы в users — кешированные суммы; каждая продажа пишет сюда
// три подписанные записи в той же транзакции, что и обновление балансов
type LedgerEntry struct {
	ID        uint      `gorm:"primaryKey"`
	AccountID uint      `gorm:"not null;index"`
	ProductID uint      `gorm:"not null;index"`
	Amount    float64   `gorm:"type:decimal(12,2);not null"` // со знаком: дебет < 0, кредит > 0
	Kind      string    `gorm:"type:varchar(30);not null"`   // purchase_debit, sale_credit, commission_credit
	CreatedAt time.Time `gorm:"not null"`
}
