// Package storage holds what the SQL sinks share: the hotels row layout and
// its JSON encoding.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"hotel_merge/internal/domain"
)

// Columns in insert order.
var Columns = []string{
	"hotel_id", "seq", "destination_id", "name", "location",
	"description", "images", "amenities", "booking_conditions",
}

// Row is one hotels row. Nested values are JSON text; nil pointers are NULL.
type Row struct {
	ID                string
	Seq               int
	DestinationID     string
	Name              string
	Location          string
	Description       string
	Images            string
	Amenities         *string
	BookingConditions *string
}

// EncodeRow flattens a hotel; seq is its position in the reconciled list.
func EncodeRow(seq int, h domain.Hotel) (Row, error) {
	loc, err := json.Marshal(h.Location)
	if err != nil {
		return Row{}, fmt.Errorf("hotel %s: location: %w", h.ID, err)
	}
	imgs, err := json.Marshal(h.Images)
	if err != nil {
		return Row{}, fmt.Errorf("hotel %s: images: %w", h.ID, err)
	}
	r := Row{
		ID:            h.ID,
		Seq:           seq,
		DestinationID: h.DestinationID,
		Name:          h.Name,
		Location:      string(loc),
		Description:   h.Description,
		Images:        string(imgs),
	}
	if h.Amenities != nil {
		b, err := json.Marshal(h.Amenities)
		if err != nil {
			return Row{}, fmt.Errorf("hotel %s: amenities: %w", h.ID, err)
		}
		s := string(b)
		r.Amenities = &s
	}
	if h.BookingConditions != nil {
		b, err := json.Marshal(h.BookingConditions)
		if err != nil {
			return Row{}, fmt.Errorf("hotel %s: booking_conditions: %w", h.ID, err)
		}
		s := string(b)
		r.BookingConditions = &s
	}
	return r, nil
}

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// Args returns the row values in Columns order.
func (r Row) Args() []any {
	return []any{
		r.ID, r.Seq, r.DestinationID, r.Name, r.Location,
		r.Description, r.Images, valStr(r.Amenities), valStr(r.BookingConditions),
	}
}

// ScanRow reads one row selected as SelectList.
func ScanRow(sc interface{ Scan(...any) error }) (Row, error) {
	var r Row
	var amen, booking sql.NullString
	if err := sc.Scan(
		&r.ID, &r.Seq, &r.DestinationID, &r.Name, &r.Location,
		&r.Description, &r.Images, &amen, &booking,
	); err != nil {
		return Row{}, err
	}
	if amen.Valid {
		s := amen.String
		r.Amenities = &s
	}
	if booking.Valid {
		s := booking.String
		r.BookingConditions = &s
	}
	return r, nil
}

// SelectList is the column list matching ScanRow.
const SelectList = "hotel_id, seq, destination_id, name, location, description, images, amenities, booking_conditions"

func DecodeRow(r Row) (domain.Hotel, error) {
	h := domain.Hotel{
		ID:            r.ID,
		DestinationID: r.DestinationID,
		Name:          r.Name,
		Description:   r.Description,
	}
	if err := json.Unmarshal([]byte(r.Location), &h.Location); err != nil {
		return domain.Hotel{}, fmt.Errorf("hotel %s: location: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.Images), &h.Images); err != nil {
		return domain.Hotel{}, fmt.Errorf("hotel %s: images: %w", r.ID, err)
	}
	if r.Amenities != nil {
		if err := json.Unmarshal([]byte(*r.Amenities), &h.Amenities); err != nil {
			return domain.Hotel{}, fmt.Errorf("hotel %s: amenities: %w", r.ID, err)
		}
	}
	if r.BookingConditions != nil {
		if err := json.Unmarshal([]byte(*r.BookingConditions), &h.BookingConditions); err != nil {
			return domain.Hotel{}, fmt.Errorf("hotel %s: booking_conditions: %w", r.ID, err)
		}
	}
	return h, nil
}

// Cursors are the seq of the last row served.

func EncodeCursor(seq int) string { return strconv.Itoa(seq) }

// DecodeCursor returns -1 for a nil cursor so the first page starts at seq 0.
func DecodeCursor(c *string) (int, error) {
	if c == nil || *c == "" {
		return -1, nil
	}
	n, err := strconv.Atoi(*c)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w %q", domain.ErrBadCursor, *c)
	}
	return n, nil
}

// Page size bounds applied by the sinks whatever the caller asks for.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ClampLimit maps a non-positive limit to DefaultLimit and caps it at MaxLimit.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

// Page trims a limit+1 result set to limit and derives the next cursor.
// A non-positive limit leaves rows untrimmed.
func Page(rows []Row, limit int) (domain.HotelsPage, error) {
	var next *string
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
		c := EncodeCursor(rows[len(rows)-1].Seq)
		next = &c
	}
	out := make([]domain.Hotel, 0, len(rows))
	for _, r := range rows {
		h, err := DecodeRow(r)
		if err != nil {
			return domain.HotelsPage{}, err
		}
		out = append(out, h)
	}
	return domain.HotelsPage{Items: out, NextCursor: next}, nil
}
