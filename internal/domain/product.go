package domain

import "time"

type ProductCategory string

const (
	CategoryBouquet     ProductCategory = "букет"
	CategoryComposition ProductCategory = "композиция"
	CategoryPotted      ProductCategory = "горшечный"
)

func IsValidCategory(v string) bool {
	switch ProductCategory(v) {
	case CategoryBouquet, CategoryComposition, CategoryPotted:
		return true
	}
	return false
}

type Product struct {
	ID              uint
	Name            string
	Description     *string
	Price           float64
	Category        ProductCategory
	PreparationTime *int
	ImageURL        *string
	CreatedAt       time.Time
}
