package models

type Order struct {
	BaseModel
	UserID string      `gorm:"type:uuid;not null;index"`
	Items  []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Total  float64     `gorm:"not null"`
	Status OrderStatus `gorm:"type:varchar(20);not null;default:'pending'"`
}

type OrderItem struct {
	BaseModel
	OrderID   string  `gorm:"type:uuid;not null;index"`
	ProductID string  `gorm:"type:uuid;not null"`
	Name      string  `gorm:"not null"`
	Price     float64 `gorm:"not null"`
	Quantity  int     `gorm:"not null"`
}
