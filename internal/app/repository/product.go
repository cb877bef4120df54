package repository

import (
	"errors"
	"time"

	"bidding/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для работы с товарами

func (r *Repository) CreateProduct(sellerID uint, title, description string, price float64, categoryID *uint) (*ds.Product, error) {
	product := ds.Product{
		Title:       title,
		Description: description,
		Price:       price,
		SellerID:    sellerID,
		CategoryID:  categoryID,
		CreatedAt:   time.Now(),
	}

	err := r.db.Create(&product).Error
	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *Repository) GetProductByID(id uint) (*ds.Product, error) {
	var product ds.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// GetLiveProducts возвращает проверенные и непроданные лоты
// с опциональным поиском по названию
func (r *Repository) GetLiveProducts(query string) ([]ds.Product, error) {
	var products []ds.Product
	q := r.db.Where("is_verify = ? AND is_soldout = ?", true, false)
	if query != "" {
		q = q.Where("title LIKE ?", "%"+query+"%")
	}
	err := q.Order("created_at DESC").Find(&products).Error
	return products, err
}

// GetAllProducts — весь каталог, включая непроверенные (для админа)
func (r *Repository) GetAllProducts() ([]ds.Product, error) {
	var products []ds.Product
	err := r.db.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *Repository) GetProductsBySeller(sellerID uint) ([]ds.Product, error) {
	var products []ds.Product
	err := r.db.Where("seller_id = ?", sellerID).Order("created_at DESC").Find(&products).Error
	return products, err
}

// UpdateProduct меняет описание лота; проданный лот заморожен
func (r *Repository) UpdateProduct(productID uint, title, description string, price float64, categoryID *uint) (*ds.Product, error) {
	product, err := r.GetProductByID(productID)
	if err != nil {
		return nil, err
	}
	if product.IsSoldout {
		return nil, ErrProductSealed
	}

	updates := map[string]interface{}{}
	if title != "" {
		updates["title"] = title
	}
	if description != "" {
		updates["description"] = description
	}
	if price > 0 {
		updates["price"] = price
	}
	if categoryID != nil {
		updates["category_id"] = *categoryID
	}

	if len(updates) > 0 {
		result := r.db.Model(&ds.Product{}).
			Where("id = ? AND is_soldout = ?", productID, false).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrProductSealed
		}
	}

	return r.GetProductByID(productID)
}

// VerifyProduct — модерация админом: подтверждает лот и назначает
// процент комиссии. Повторная отправка того же запроса даёт то же состояние
func (r *Repository) VerifyProduct(productID uint, commission float64) (*ds.Product, error) {
	result := r.db.Model(&ds.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"is_verify":  true,
			"commission": commission,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.GetProductByID(productID)
}

func (r *Repository) SetProductImage(productID uint, imageURL, imageKey string) (*ds.Product, error) {
	result := r.db.Model(&ds.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"image_url": imageURL,
			"image_key": imageKey,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.GetProductByID(productID)
}

// DeleteProduct удаляет лот и возвращает ключ картинки,
// чтобы хендлер мог почистить хранилище fire-and-forget
func (r *Repository) DeleteProduct(productID uint) (*string, error) {
	product, err := r.GetProductByID(productID)
	if err != nil {
		return nil, err
	}
	if product.IsSoldout {
		return nil, ErrProductSealed
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&ds.Bid{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ds.Product{}, productID).Error
	})
	if err != nil {
		return nil, err
	}

	return product.ImageKey, nil
}
