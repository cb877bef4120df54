package repository

import (
	"errors"

	"bidding/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для категорий (справочник, CRUD админа)

func (r *Repository) GetAllCategories() ([]ds.Category, error) {
	var categories []ds.Category
	err := r.db.Order("title").Find(&categories).Error
	return categories, err
}

func (r *Repository) GetCategoryByID(id uint) (*ds.Category, error) {
	var category ds.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *Repository) CreateCategory(title string) (*ds.Category, error) {
	category := ds.Category{Title: title}
	err := r.db.Create(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory идемпотентен: повторная отправка того же названия
// оставляет то же состояние
func (r *Repository) UpdateCategory(id uint, title string) (*ds.Category, error) {
	result := r.db.Model(&ds.Category{}).Where("id = ?", id).Update("title", title)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// возможно, название уже такое — проверяем существование
		return r.GetCategoryByID(id)
	}
	return r.GetCategoryByID(id)
}

func (r *Repository) DeleteCategory(id uint) error {
	result := r.db.Delete(&ds.Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
