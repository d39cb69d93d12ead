package web

import (
	domnotice "example.com/storefront/internal/domain/notice"
	domproduct "example.com/storefront/internal/domain/product"
)

// Card is one product in the catalog grid.
type Card struct {
	Product domproduct.Product
	Liked   bool
	Stars   domproduct.StarRating
}

func NewCards(products []*domproduct.Product, liked []int64) []Card {
	likedSet := make(map[int64]bool, len(liked))
	for _, id := range liked {
		likedSet[id] = true
	}
	cards := make([]Card, 0, len(products))
	for _, p := range products {
		cards = append(cards, Card{
			Product: *p,
			Liked:   likedSet[p.ID],
			Stars:   p.Stars(),
		})
	}
	return cards
}

type IndexPage struct {
	Cards   []Card
	Cart    View
	Notices []domnotice.Notice
	Email   string
}

// FormPage backs the login and register pages.
type FormPage struct {
	Values        map[string]string
	Invalid       map[string]string
	SubmitEnabled bool
	Notices       []domnotice.Notice
	Cart          View
}
