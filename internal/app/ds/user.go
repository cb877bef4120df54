package ds

import "time"

// 1. Таблица пользователей
type User struct {
	ID                  uint       `gorm:"primaryKey"`
	Name                string     `gorm:"type:varchar(100);not null"`
	Email               string     `gorm:"type:varchar(100);unique;not null"`
	Password            string     `gorm:"type:varchar(255);not null"`                // bcrypt-хеш
	Role                string     `gorm:"type:varchar(20);default:'buyer';not null"` // buyer, seller, admin
	Balance             float64    `gorm:"type:decimal(12,2);default:0;not null"`
	CommissionBalance   float64    `gorm:"type:decimal(12,2);default:0;not null"` // копится только у админа
	ImageURL            *string    `gorm:"type:varchar(255)"`
	ImageKey            *string    `gorm:"type:varchar(255)"`      // ключ объекта в MinIO
	ResetToken          *string    `gorm:"type:varchar(10);index"` // одноразовый OTP-код
	ResetTokenExpiresAt *time.Time `gorm:"default:null"`
	CreatedAt           time.Time  `gorm:"not null"`
}
