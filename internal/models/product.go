package models

type Product struct {
	BaseModel
	Name          string  `gorm:"not null"`
	Category      string  `gorm:"index"`
	Description   string
	Price         float64 `gorm:"not null"`
	OriginalPrice float64
	Stock         int
	Image         string
	Rating        float64 `gorm:"default:5.0"`
	Badge         string
	Featured      bool `gorm:"default:false;index"`
}
