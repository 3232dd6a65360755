package app

import (
	"context"
	"fmt"
	"time"

	"hotel_merge/internal/domain"
)

type QueryService struct {
	repo     domain.HotelRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.HotelRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func hotelKey(id string) string { return hotelKeyPrefix + id }

func hotelsKey(q domain.HotelsQuery) string {
	dest, cur := "*", ""
	if q.DestinationID != nil {
		dest = *q.DestinationID
	}
	if q.Cursor != nil {
		cur = *q.Cursor
	}
	return fmt.Sprintf("%s%s:%d:%s", hotelsKeyPrefix, dest, q.Limit, cur)
}

func (s *QueryService) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	key := hotelKey(id)
	var h domain.Hotel
	if ok, _ := s.cache.Get(ctx, key, &h); ok {
		return h, nil
	}
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	return h, nil
}

func (s *QueryService) ListHotels(ctx context.Context, q domain.HotelsQuery) (domain.HotelsPage, error) {
	key := hotelsKey(q)
	var out domain.HotelsPage
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	page, err := s.repo.ListHotels(ctx, q)
	if err != nil {
		return domain.HotelsPage{}, err
	}

	// copy so a caller mutating the result cannot reach the cached value
	cp := domain.HotelsPage{NextCursor: page.NextCursor, Items: make([]domain.Hotel, len(page.Items))}
	copy(cp.Items, page.Items)

	_ = s.cache.Set(ctx, key, cp, int(s.cacheTTL.Seconds()))
	return cp, nil
}
