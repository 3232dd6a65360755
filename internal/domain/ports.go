package domain

import (
	"context"
	"encoding/json"
)

type HotelRepository interface {
	// Write path: full replace, every run.
	ReplaceAll(ctx context.Context, hs []Hotel) error

	// Read paths
	GetHotel(ctx context.Context, id string) (Hotel, error)
	ListHotels(ctx context.Context, q HotelsQuery) (HotelsPage, error)
}

// SupplierClient fetches one supplier's raw listing array.
type SupplierClient interface {
	Name() string
	Fetch(ctx context.Context) (json.RawMessage, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
	DelPrefix(ctx context.Context, prefix string) error
}

type HotelsQuery struct {
	DestinationID *string
	Limit         int
	Cursor        *string // opaque, from HotelsPage.NextCursor
}

type HotelsPage struct {
	Items      []Hotel `json:"items"`
	NextCursor *string `json:"next_cursor,omitempty"`
}
