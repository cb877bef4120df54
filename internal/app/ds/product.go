package ds

import "time"

// 2. Таблица товаров (лотов)
// Жизненный цикл: создан продавцом (не проверен) → админ проверяет и
// назначает комиссию → продан наибольшей ставке → терминальное состояние
type Product struct {
	ID              uint       `gorm:"primaryKey"`
	Title           string     `gorm:"type:varchar(100);not null"`
	Description     string     `gorm:"type:text"`
	Price           float64    `gorm:"type:decimal(12,2);not null"`          // стартовая цена, > 0
	Commission      float64    `gorm:"type:decimal(5,2);default:0;not null"` // процент площадки, 0-100
	SellerID        uint       `gorm:"not null;index"`
	CategoryID      *uint      `gorm:"index"`
	IsVerify        bool       `gorm:"type:boolean;default:false;not null"`
	IsSoldout       bool       `gorm:"type:boolean;default:false;not null"`
	WinningBidderID *uint      `gorm:"default:null"`
	ImageURL        *string    `gorm:"type:varchar(255)"`
	ImageKey        *string    `gorm:"type:varchar(255)"`
	CreatedAt       time.Time  `gorm:"not null"`
	SoldAt          *time.Time `gorm:"default:null"`

	Seller        User      `gorm:"foreignKey:SellerID"`
	Category      *Category `gorm:"foreignKey:CategoryID"`
	WinningBidder *User     `gorm:"foreignKey:WinningBidderID"`
}
