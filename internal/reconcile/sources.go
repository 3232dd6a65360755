package reconcile

import (
	"bytes"
	"encoding/json"

	"hotel_merge/internal/domain"
)

type Supplier string

const (
	Acme       Supplier = "acme"
	Patagonia  Supplier = "patagonia"
	Paperflies Supplier = "paperflies"
)

// Suppliers in discovery order.
var Suppliers = []Supplier{Acme, Patagonia, Paperflies}

// AcmeHotel is one Acme listing. Every field except ID is optional.
type AcmeHotel struct {
	ID            string
	DestinationID *string
	Name          *string
	Latitude      *float64
	Longitude     *float64
	Address       *string
	City          *string
	Country       *string
	Description   *string
}

type PatagoniaHotel struct {
	ID              string
	DestinationID   *string
	Name            *string
	Latitude        *float64
	Longitude       *float64
	Address         *string
	Description     *string
	RoomImages      []domain.Image
	AmenitiesImages []domain.Image
}

type PaperfliesHotel struct {
	ID                string
	DestinationID     *string
	Name              *string
	Address           *string
	Country           *string
	Description       *string
	RoomImages        []domain.Image
	SiteImages        []domain.Image
	Amenities         *domain.Amenities
	BookingConditions []string // nil when the listing has none
}

/********** per-supplier schema adapters **********/

func adaptAcme(m map[string]any) (AcmeHotel, bool) {
	id, ok := keyText(m["Id"])
	if !ok {
		return AcmeHotel{}, false
	}
	return AcmeHotel{
		ID:            id,
		DestinationID: optKey(m, "DestinationId"),
		Name:          optText(m, "Name"),
		Latitude:      optNumber(m, "Latitude"),
		Longitude:     optNumber(m, "Longitude"),
		Address:       optText(m, "Address"),
		City:          optText(m, "City"),
		Country:       optText(m, "Country"),
		Description:   optText(m, "Description"),
	}, true
}

func adaptPatagonia(m map[string]any) (PatagoniaHotel, bool) {
	id, ok := keyText(m["id"])
	if !ok {
		return PatagoniaHotel{}, false
	}
	return PatagoniaHotel{
		ID:              id,
		DestinationID:   optKey(m, "destination"),
		Name:            optText(m, "name"),
		Latitude:        optNumber(m, "lat"),
		Longitude:       optNumber(m, "lng"),
		Address:         optText(m, "address"),
		Description:     optText(m, "info"),
		RoomImages:      optImages(m, "images.rooms", "url", "description"),
		AmenitiesImages: optImages(m, "images.amenities", "url", "description"),
	}, true
}

func adaptPaperflies(m map[string]any) (PaperfliesHotel, bool) {
	id, ok := keyText(m["hotel_id"])
	if !ok {
		return PaperfliesHotel{}, false
	}
	h := PaperfliesHotel{
		ID:            id,
		DestinationID: optKey(m, "destination_id"),
		Name:          optText(m, "hotel_name"),
		Address:       optText(m, "location.address"),
		Country:       optText(m, "location.country"),
		Description:   optText(m, "details"),
		RoomImages:    optImages(m, "images.rooms", "link", "caption"),
		SiteImages:    optImages(m, "images.site", "link", "caption"),
	}
	if _, isObj := lookupAny(m, "amenities").(map[string]any); isObj {
		general, _ := optStrings(m, "amenities.general")
		room, _ := optStrings(m, "amenities.room")
		h.Amenities = &domain.Amenities{General: nonNil(general), Room: nonNil(room)}
	}
	if bc, ok := optStrings(m, "booking_conditions"); ok {
		h.BookingConditions = bc
	}
	return h, true
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

/********** payload decoding **********/

// decodeObjects turns one supplier payload into its objects. Empty input and a
// JSON null mean "no data" and yield no objects.
func decodeObjects(s Supplier, raw json.RawMessage) ([]map[string]any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber() // keep numeric ids and destinations as their literal text
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, malformed(s, "decode", -1, "%v", err)
	}

	arr, ok := v.([]any)
	if !ok {
		return nil, malformed(s, "shape", -1, "top-level %s, want array", kindOf(v))
	}
	out := make([]map[string]any, 0, len(arr))
	for i, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			return nil, malformed(s, "shape", i, "element is %s, want object", kindOf(el))
		}
		out = append(out, obj)
	}
	return out, nil
}

// adaptAll decodes a payload and adapts each object; records without an
// identity key are counted in skipped and left out.
func adaptAll[T any](s Supplier, raw json.RawMessage, adapt func(map[string]any) (T, bool)) (recs []T, skipped int, err error) {
	objs, err := decodeObjects(s, raw)
	if err != nil {
		return nil, 0, err
	}
	recs = make([]T, 0, len(objs))
	for _, o := range objs {
		r, ok := adapt(o)
		if !ok {
			skipped++
			continue
		}
		recs = append(recs, r)
	}
	return recs, skipped, nil
}
