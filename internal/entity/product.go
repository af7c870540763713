package entity

// Product represents a catalog item that can be consumed by a job.
type Product struct {
	ID            int     `gorm:"primaryKey" json:"id"`
	ProductNumber string  `gorm:"size:64" json:"product_number"`
	Name          string  `gorm:"size:255;not null" json:"name"`
	EAN           string  `gorm:"column:ean;size:64" json:"ean"`
	Type          string  `gorm:"size:128" json:"type"`
	Price         float64 `json:"price"`
}

func (Product) TableName() string {
	return "products"
}
