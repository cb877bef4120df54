package ds

// 4. Таблица категорий (справочник, CRUD только для админа)
type Category struct {
	ID    uint   `gorm:"primaryKey"`
	Title string `gorm:"type:varchar(100);unique;not null"`
}
