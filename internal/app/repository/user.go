package repository

import (
	"errors"
	"time"

	"bidding/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для пользователей (ORM)

func (r *Repository) GetUserByID(id uint) (*ds.User, error) {
	var user ds.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByEmail(email string) (*ds.User, error) {
	var user ds.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) UserExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&ds.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateUser(name, email, hashedPassword string) (*ds.User, error) {
	exists, err := r.UserExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	user := ds.User{
		Name:      name,
		Email:     email,
		Password:  hashedPassword,
		Role:      "buyer",
		CreatedAt: time.Now(),
	}

	err = r.db.Create(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *Repository) GetAllUsers() ([]ds.User, error) {
	var users []ds.User
	err := r.db.Order("id").Find(&users).Error
	return users, err
}

// GetAdmin возвращает аккаунт площадки, на котором копится комиссия
func (r *Repository) GetAdmin() (*ds.User, error) {
	var admin ds.User
	err := r.db.Where("role = ?", "admin").First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminMissing
		}
		return nil, err
	}
	return &admin, nil
}

// BecomeSeller — явное повышение роли по текущей сессии,
// без повторного ввода пароля и без побочных эффектов при входе
func (r *Repository) BecomeSeller(userID uint) error {
	result := r.db.Model(&ds.User{}).
		Where("id = ? AND role = ?", userID, "buyer").
		Update("role", "seller")
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// либо пользователя нет, либо он уже продавец/админ
		user, err := r.GetUserByID(userID)
		if err != nil {
			return err
		}
		if user.Role == "seller" {
			return nil // идемпотентно
		}
		return ErrNotFound
	}
	return nil
}

func (r *Repository) UpdateProfile(userID uint, name string, imageURL, imageKey *string) (*ds.User, error) {
	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if imageURL != nil {
		updates["image_url"] = *imageURL
		updates["image_key"] = *imageKey
	}

	if len(updates) > 0 {
		result := r.db.Model(&ds.User{}).Where("id = ?", userID).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}

	return r.GetUserByID(userID)
}

// SetResetToken переводит пользователя в состояние PendingReset
func (r *Repository) SetResetToken(userID uint, code string, expiresAt time.Time) error {
	result := r.db.Model(&ds.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"reset_token":            code,
			"reset_token_expires_at": expiresAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ConsumeResetToken одним условным UPDATE меняет пароль и гасит код.
// Код одноразовый даже при конкурентных запросах: выиграет ровно тот,
// чей UPDATE застанет reset_token на месте
func (r *Repository) ConsumeResetToken(code, hashedPassword string) (*ds.User, error) {
	var user ds.User
	err := r.db.Where("reset_token = ? AND reset_token_expires_at > ?", code, time.Now()).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidResetCode
		}
		return nil, err
	}

	result := r.db.Model(&ds.User{}).
		Where("id = ? AND reset_token = ?", user.ID, code).
		Updates(map[string]interface{}{
			"password":               hashedPassword,
			"reset_token":            nil,
			"reset_token_expires_at": nil,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// код успели потратить параллельным запросом
		return nil, ErrInvalidResetCode
	}

	user.Password = hashedPassword
	user.ResetToken = nil
	user.ResetTokenExpiresAt = nil
	return &user, nil
}
