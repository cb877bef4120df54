package ds

import "time"

// 3. Таблица ставок
type Bid struct {
	ID        uint      `gorm:"primaryKey"`
	ProductID uint      `gorm:"not null;index"`
	BidderID  uint      `gorm:"not null;index"`
	Amount    float64   `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time `gorm:"not null"`

	Product Product `gorm:"foreignKey:ProductID"`
	Bidder  User    `gorm:"foreignKey:BidderID"`
}
