package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, as the catalog sends them. This is a
	// package-level switch in shopspring/decimal: it changes how every
	// decimal.Decimal in the process is marshaled, not only products.
	decimal.MarshalJSONWithoutQuotes = true
}

// Rating is the catalog's aggregate customer rating for a product.
type Rating struct {
	Rate  decimal.Decimal `json:"rate"`
	Count int             `json:"count"`
}

// Product is one entry of the external catalog. A product decoded from JSON
// keeps its source document and encodes back to it unchanged, so fields the
// catalog adds later are passed through.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      Rating          `json:"rating"`

	source json.RawMessage
}

// productFields has Product's fields without its JSON methods.
type productFields Product

// UnmarshalJSON decodes the typed fields and keeps a copy of data.
func (p *Product) UnmarshalJSON(data []byte) error {
	var v productFields
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Product(v)
	p.source = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes the source document when there is one.
func (p Product) MarshalJSON() ([]byte, error) {
	if len(p.source) > 0 {
		return p.source, nil
	}
	return json.Marshal(productFields(p))
}

// ComparisonScore is rating count × rating rate; zero without a rating.
func (p Product) ComparisonScore() decimal.Decimal {
	return p.Rating.Rate.Mul(decimal.NewFromInt(int64(p.Rating.Count)))
}

// ScoredProduct pairs a product with its comparison score for ranking.
// It is never serialized.
type ScoredProduct struct {
	Product
	Score decimal.Decimal
}

// NewScoredProduct computes the score of p.
func NewScoredProduct(p Product) ScoredProduct {
	return ScoredProduct{Product: p, Score: p.ComparisonScore()}
}

// ProductFilter holds the optional search predicates. Zero values match everything.
type ProductFilter struct {
	Query    string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// Matches reports whether p satisfies every predicate set on f.
// Query is a case-insensitive substring of the title; Category is a
// case-insensitive exact match; price bounds are inclusive.
func (f ProductFilter) Matches(p Product) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Query)) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}
