package product

import (
	"math"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	Image    string
	Category string
	Rating   float64
}

// StarRating is the five-star projection of a rating.
type StarRating struct {
	Full  int
	Half  int
	Empty int
}

func (p Product) Stars() StarRating {
	rating := math.Max(0, math.Min(5, p.Rating))
	full := int(math.Floor(rating))
	half := 0
	if rating-float64(full) >= 0.5 {
		half = 1
	}
	return StarRating{
		Full:  full,
		Half:  half,
		Empty: 5 - full - half,
	}
}
