package dto

// ProductForm is the admin create/edit form.
type ProductForm struct {
	Name          string  `form:"name" json:"name" validate:"required,max=200"`
	Category      string  `form:"category" json:"category" validate:"required,max=100"`
	Description   string  `form:"description" json:"description" validate:"max=2000"`
	Price         float64 `form:"price" json:"price" validate:"required,gt=0"`
	OriginalPrice float64 `form:"originalPrice" json:"originalPrice" validate:"gte=0"`
	Stock         int     `form:"stock" json:"stock" validate:"gte=0"`
	Image         string  `form:"image" json:"image" validate:"max=300"`
	Rating        float64 `form:"rating" json:"rating" validate:"gte=0,lte=5"`
	Badge         string  `form:"badge" json:"badge" validate:"max=50"`
	Featured      bool    `form:"featured" json:"featured"`
}
