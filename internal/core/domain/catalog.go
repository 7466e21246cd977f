package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxPhotoBytes is the exclusive upper bound for a product photo.
const MaxPhotoBytes = 1000000

type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
	Slug string `json:"slug,omitempty"`
}

// Photo is the binary image attached to a product. It is never part of a
// product's JSON form; it is served from its own endpoint.
type Photo struct {
	Data        []byte
	ContentType string
}

type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    Category        `json:"category"`
	Quantity    int             `json:"quantity"`
	Shipping    bool            `json:"shipping"`
	Photo       *Photo          `json:"-"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
