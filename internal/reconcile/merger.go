package reconcile

import (
	"strings"

	"hotel_merge/internal/domain"
)

// firstText walks f's chain and returns the first non-empty value, trimmed.
// Emptiness is judged on the raw value; the default "" applies only once the
// chain is exhausted.
func firstText(f Field, s Sources) string {
	for _, sup := range precedence[f] {
		if v := s.record(sup).text(f); v != nil && *v != "" {
			return strings.TrimSpace(*v)
		}
	}
	return ""
}

// firstNumber walks f's chain and returns the first numeric value.
func firstNumber(f Field, s Sources) *float64 {
	for _, sup := range precedence[f] {
		if v := s.record(sup).number(f); v != nil {
			x := *v
			return &x
		}
	}
	return nil
}

// concatImages appends the lists of every supplier in f's chain, in chain order.
func concatImages(f Field, s Sources) []domain.Image {
	out := make([]domain.Image, 0)
	for _, sup := range precedence[f] {
		out = append(out, s.record(sup).images(f)...)
	}
	return out
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

/********** per-attribute merge functions **********/

func MergeDestinationID(s Sources) string { return firstText(FieldDestinationID, s) }

func MergeName(s Sources) string { return firstText(FieldName, s) }

func MergeDescription(s Sources) string { return firstText(FieldDescription, s) }

func MergeLocation(s Sources) domain.Location {
	return domain.Location{
		Latitude:  firstNumber(FieldLatitude, s),
		Longitude: firstNumber(FieldLongitude, s),
		Address:   firstText(FieldAddress, s),
		City:      firstText(FieldCity, s),
		Country:   firstText(FieldCountry, s),
	}
}

func MergeImages(s Sources) domain.Images {
	return domain.Images{
		Rooms:     concatImages(FieldRoomImages, s),
		Site:      concatImages(FieldSiteImages, s),
		Amenities: concatImages(FieldAmenitiesImages, s),
	}
}

// MergeAmenities returns a trimmed copy of the first supplier's amenities, or
// nil when no supplier in the chain has any. It never defaults to empty lists.
func MergeAmenities(s Sources) *domain.Amenities {
	for _, sup := range precedence[FieldAmenities] {
		if a := s.record(sup).amenities(); a != nil {
			return &domain.Amenities{General: trimAll(a.General), Room: trimAll(a.Room)}
		}
	}
	return nil
}

func MergeBookingConditions(s Sources) []string {
	for _, sup := range precedence[FieldBookingConditions] {
		if bc := s.record(sup).bookingConditions(); bc != nil {
			return trimAll(bc)
		}
	}
	return nil
}

// Build assembles the canonical hotel for one resolved identity.
func Build(id Identity) domain.Hotel {
	s := id.Sources
	return domain.Hotel{
		ID:                id.HotelID,
		DestinationID:     id.DestinationID,
		Name:              MergeName(s),
		Location:          MergeLocation(s),
		Description:       MergeDescription(s),
		Images:            MergeImages(s),
		Amenities:         MergeAmenities(s),
		BookingConditions: MergeBookingConditions(s),
	}
}
