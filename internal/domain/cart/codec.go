package cart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// storedItem is the persisted layout: a JSON array of these objects.
type storedItem struct {
	ID       json.RawMessage `json:"id"`
	Name     string          `json:"name"`
	Price    json.Number     `json:"price"`
	Image    string          `json:"image"`
	Quantity *int            `json:"quantity,omitempty"`
}

func Marshal(items []LineItem) ([]byte, error) {
	out := make([]storedItem, 0, len(items))
	for _, item := range items {
		quantity := item.Quantity
		out = append(out, storedItem{
			ID:       json.RawMessage(strconv.FormatInt(item.ID, 10)),
			Name:     item.Name,
			Price:    json.Number(item.Price.String()),
			Image:    item.Image,
			Quantity: &quantity,
		})
	}
	return json.Marshal(out)
}

// Unmarshal decodes a persisted cart. Missing quantities default to one; the
// remaining normalization happens in New.
func Unmarshal(data []byte) ([]LineItem, error) {
	var stored []storedItem
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}

	items := make([]LineItem, 0, len(stored))
	for i, s := range stored {
		id, err := decodeID(s.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrMalformedState, i, err)
		}
		price := decimal.Zero
		if s.Price != "" {
			price, err = decimal.NewFromString(s.Price.String())
			if err != nil {
				return nil, fmt.Errorf("%w: item %d: price: %v", ErrMalformedState, i, err)
			}
		}
		quantity := 1
		if s.Quantity != nil {
			quantity = *s.Quantity
		}
		items = append(items, LineItem{
			ID:       id,
			Name:     s.Name,
			Price:    price,
			Image:    s.Image,
			Quantity: quantity,
		})
	}
	return items, nil
}

// decodeID accepts a JSON number, a numeric string or nothing at all.
func decodeID(raw json.RawMessage) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		return strconv.ParseInt(s, 10, 64)
	}
	return strconv.ParseInt(string(raw), 10, 64)
}
