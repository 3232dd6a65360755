package reconcile

import "hotel_merge/internal/domain"

// Field names a canonical attribute, in the dotted form of the canonical JSON.
type Field string

const (
	FieldDestinationID     Field = "destination_id"
	FieldName              Field = "name"
	FieldLatitude          Field = "location.latitude"
	FieldLongitude         Field = "location.longitude"
	FieldAddress           Field = "location.address"
	FieldCity              Field = "location.city"
	FieldCountry           Field = "location.country"
	FieldDescription       Field = "description"
	FieldRoomImages        Field = "images.rooms"
	FieldSiteImages        Field = "images.site"
	FieldAmenitiesImages   Field = "images.amenities"
	FieldAmenities         Field = "amenities"
	FieldBookingConditions Field = "booking_conditions"
)

// precedence lists, per field, the suppliers consulted in order. Scalar fields
// take the first usable value; image fields concatenate every listed supplier.
var precedence = map[Field][]Supplier{
	FieldDestinationID:     {Acme, Patagonia, Paperflies},
	FieldName:              {Acme, Patagonia, Paperflies},
	FieldLatitude:          {Acme, Patagonia},
	FieldLongitude:         {Acme, Patagonia},
	FieldAddress:           {Patagonia, Paperflies, Acme},
	FieldCity:              {Acme},
	FieldCountry:           {Paperflies, Acme},
	FieldDescription:       {Paperflies, Patagonia, Acme},
	FieldRoomImages:        {Patagonia, Paperflies},
	FieldSiteImages:        {Paperflies},
	FieldAmenitiesImages:   {Patagonia},
	FieldAmenities:         {Paperflies},
	FieldBookingConditions: {Paperflies},
}

// Chain returns a copy of the supplier order used for f.
func Chain(f Field) []Supplier {
	return append([]Supplier(nil), precedence[f]...)
}

// Sources is the (possibly partial) set of listings bound to one identity.
type Sources struct {
	Acme       *AcmeHotel
	Patagonia  *PatagoniaHotel
	Paperflies *PaperfliesHotel
}

// record is what the merger can ask any supplier listing. Implementations
// accept a nil receiver and answer "absent".
type record interface {
	text(f Field) *string
	number(f Field) *float64
	images(f Field) []domain.Image
	amenities() *domain.Amenities
	bookingConditions() []string
}

func (s Sources) record(sup Supplier) record {
	switch sup {
	case Acme:
		return s.Acme
	case Patagonia:
		return s.Patagonia
	case Paperflies:
		return s.Paperflies
	}
	return (*AcmeHotel)(nil)
}

/********** acme **********/

func (h *AcmeHotel) text(f Field) *string {
	if h == nil {
		return nil
	}
	switch f {
	case FieldDestinationID:
		return h.DestinationID
	case FieldName:
		return h.Name
	case FieldAddress:
		return h.Address
	case FieldCity:
		return h.City
	case FieldCountry:
		return h.Country
	case FieldDescription:
		return h.Description
	}
	return nil
}

func (h *AcmeHotel) number(f Field) *float64 {
	if h == nil {
		return nil
	}
	switch f {
	case FieldLatitude:
		return h.Latitude
	case FieldLongitude:
		return h.Longitude
	}
	return nil
}

func (h *AcmeHotel) images(Field) []domain.Image  { return nil }
func (h *AcmeHotel) amenities() *domain.Amenities { return nil }
func (h *AcmeHotel) bookingConditions() []string  { return nil }

/********** patagonia **********/

func (h *PatagoniaHotel) text(f Field) *string {
	if h == nil {
		return nil
	}
	switch f {
	case FieldDestinationID:
		return h.DestinationID
	case FieldName:
		return h.Name
	case FieldAddress:
		return h.Address
	case FieldDescription:
		return h.Description
	}
	return nil
}

func (h *PatagoniaHotel) number(f Field) *float64 {
	if h == nil {
		return nil
	}
	switch f {
	case FieldLatitude:
		return h.Latitude
	case FieldLongitude:
		return h.Longitude
	}
	return nil
}

func (h *PatagoniaHotel) images(f Field) []domain.Image {
	if h == nil {
		return nil
	}
	switch f {
	case FieldRoomImages:
		return h.RoomImages
	case FieldAmenitiesImages:
		return h.AmenitiesImages
	}
	return nil
}

func (h *PatagoniaHotel) amenities() *domain.Amenities { return nil }
func (h *PatagoniaHotel) bookingConditions() []string  { return nil }

/********** paperflies **********/

func (h *PaperfliesHotel) text(f Field) *string {
	if h == nil {
		return nil
	}
	switch f {
	case FieldDestinationID:
		return h.DestinationID
	case FieldName:
		return h.Name
	case FieldAddress:
		return h.Address
	case FieldCountry:
		return h.Country
	case FieldDescription:
		return h.Description
	}
	return nil
}

func (h *PaperfliesHotel) number(Field) *float64 { return nil }

func (h *PaperfliesHotel) images(f Field) []domain.Image {
	if h == nil {
		return nil
	}
	switch f {
	case FieldRoomImages:
		return h.RoomImages
	case FieldSiteImages:
		return h.SiteImages
	}
	return nil
}

func (h *PaperfliesHotel) amenities() *domain.Amenities {
	if h == nil {
		return nil
	}
	return h.Amenities
}

func (h *PaperfliesHotel) bookingConditions() []string {
	if h == nil {
		return nil
	}
	return h.BookingConditions
}
