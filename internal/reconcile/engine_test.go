package reconcile_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_merge/internal/domain"
	"hotel_merge/internal/reconcile"
)

const acmeFeed = `[
  {"Id":"iJhz","DestinationId":5432,"Name":"","Latitude":1.264751,"Longitude":103.824006,
   "Address":" 8 Sentosa Gateway, Beach Villas ","City":"Singapore","Country":"SG","Description":"  This 5 star hotel "},
  {"Id":"SjyX","DestinationId":5432,"Name":"InterContinental Singapore Robertson Quay","Latitude":"invalid","Longitude":"",
   "Address":" 1 Nanson Road","City":"Singapore","Country":"SG","Description":"Enjoy sophisticated waterfront living"},
  {"Id":"f8c9","DestinationId":1122,"Name":"Hilton Shinjuku","Latitude":35.6926,"Longitude":139.690965,
   "Address":"160-0023, SHINJUKU-KU, 6-6-2 NISHI-SHINJUKU","City":"Tokyo","Country":"JP","Description":"Hilton Tokyo"}
]`

const patagoniaFeed = `[
  {"id":"iJhz","destination":5432,"name":"Beach Villas Singapore","lat":1.264751,"lng":103.824006,
   "address":"8 Sentosa Gateway, Beach Villas, 098269","info":"Located at the western tip of Resorts World Sentosa",
   "images":{"rooms":[{"url":"https://img/2.jpg","description":"Double room"},{"url":"https://img/4.jpg","description":"Bathroom"}],
             "amenities":[{"url":"https://img/0.jpg","description":"RWS"}]}},
  {"id":"f8c9","destination":1122,"name":"Hilton Tokyo Shinjuku","lat":35.6926,"lng":139.690965,"address":null,"info":null,
   "images":{"rooms":[{"url":"https://img/h1.jpg","description":"Suite"}],"amenities":[]}},
  {"id":"PAT1","destination":77,"name":"Patagonia Only","lat":1.23,"lng":4.56,"address":"Somewhere","info":"Quiet"}
]`

const paperfliesFeed = `[
  {"hotel_id":"iJhz","destination_id":5432,"hotel_name":"Beach Villas",
   "location":{"address":"8 Sentosa Gateway, Beach Villas, 098269","country":"Singapore"},
   "details":"Surrounded by tropical gardens, these upscale villas ",
   "amenities":{"general":["outdoor pool","indoor pool"," business center"],"room":["tv ","coffee machine"]},
   "images":{"rooms":[{"link":"https://img/p2.jpg","caption":"Double room"}],
             "site":[{"link":"https://img/s1.jpg","caption":"Front"}]},
   "booking_conditions":[" All children are welcome. ","Pets are not allowed."]},
  {"hotel_id":"PAP1","destination_id":"88","hotel_name":"  Paperflies Only ",
   "location":{"address":"Road 1","country":"Japan"},"details":"d",
   "amenities":{"general":["pool "," wifi"],"room":[]},
   "images":{"rooms":[],"site":[]},"booking_conditions":[]}
]`

func ids(hs []domain.Hotel) []string {
	out := make([]string, 0, len(hs))
	for _, h := range hs {
		out = append(out, h.ID)
	}
	return out
}

func byID(t *testing.T, hs []domain.Hotel, id string) domain.Hotel {
	t.Helper()
	for _, h := range hs {
		if h.ID == id {
			return h
		}
	}
	t.Fatalf("hotel %q not in output %v", id, ids(hs))
	return domain.Hotel{}
}

func TestReconcile_OrderAndUnion(t *testing.T) {
	hs, err := reconcile.Reconcile(json.RawMessage(acmeFeed), json.RawMessage(patagoniaFeed), json.RawMessage(paperfliesFeed))
	require.NoError(t, err)

	// Acme order, then Patagonia-only, then Paperflies-only.
	assert.Equal(t, []string{"iJhz", "SjyX", "f8c9", "PAT1", "PAP1"}, ids(hs))
}

func TestReconcile_NameFallsThroughEmptyAcme(t *testing.T) {
	hs, err := reconcile.Reconcile(json.RawMessage(acmeFeed), json.RawMessage(patagoniaFeed), json.RawMessage(paperfliesFeed))
	require.NoError(t, err)

	h := byID(t, hs, "iJhz")
	assert.Equal(t, "Beach Villas Singapore", h.Name)
	assert.Equal(t, "5432", h.DestinationID)
	assert.Equal(t, "8 Sentosa Gateway, Beach Villas, 098269", h.Location.Address)
	assert.Equal(t, "Singapore", h.Location.City)
	assert.Equal(t, "Singapore", h.Location.Country)
	assert.Equal(t, "Surrounded by tropical gardens, these upscale villas", h.Description)
	require.NotNil(t, h.Location.Latitude)
	assert.InDelta(t, 1.264751, *h.Location.Latitude, 1e-9)
}

func TestReconcile_PaperfliesOnlyAmenitiesTrimmed(t *testing.T) {
	hs, err := reconcile.Reconcile(nil, nil, json.RawMessage(paperfliesFeed))
	require.NoError(t, err)

	h := byID(t, hs, "PAP1")
	require.NotNil(t, h.Amenities)
	assert.Equal(t, []string{"pool", "wifi"}, h.Amenities.General)
	assert.Equal(t, []string{}, h.Amenities.Room)
	assert.Equal(t, "Paperflies Only", h.Name)
	assert.Equal(t, "88", h.DestinationID)
	assert.Equal(t, []string{}, h.BookingConditions)
}

func TestReconcile_EmptyAcmePatagoniaOnly(t *testing.T) {
	pat := `[{"id":"A","destination":1,"name":"Alpha","lat":1.5,"lng":2.5}]`
	hs, err := reconcile.Reconcile(json.RawMessage(`[]`), json.RawMessage(pat), json.RawMessage(paperfliesFeed[:0]))
	require.NoError(t, err)
	require.Len(t, hs, 1)

	h := hs[0]
	assert.Equal(t, "A", h.ID)
	assert.Equal(t, "", h.Location.City)
	assert.Nil(t, h.BookingConditions)
	assert.Nil(t, h.Amenities)
	assert.Equal(t, "1", h.DestinationID)
}

func TestReconcile_LatitudeTypeGate(t *testing.T) {
	hs, err := reconcile.Reconcile(
		json.RawMessage(`[{"Id":"X","Latitude":"invalid","Longitude":true}]`),
		json.RawMessage(`[{"id":"X","lat":1.23,"lng":"4.56"}]`),
		nil,
	)
	require.NoError(t, err)
	require.Len(t, hs, 1)

	require.NotNil(t, hs[0].Location.Latitude)
	assert.Equal(t, 1.23, *hs[0].Location.Latitude)
	assert.Nil(t, hs[0].Location.Longitude)
}

func TestReconcile_IntegerCoordinatesFallThrough(t *testing.T) {
	hs, err := reconcile.Reconcile(
		json.RawMessage(`[{"Id":"X","Latitude":1,"Longitude":103}]`),
		json.RawMessage(`[{"id":"X","lat":1.23,"lng":4.56}]`),
		nil,
	)
	require.NoError(t, err)
	require.Len(t, hs, 1)

	require.NotNil(t, hs[0].Location.Latitude)
	require.NotNil(t, hs[0].Location.Longitude)
	assert.Equal(t, 1.23, *hs[0].Location.Latitude)
	assert.Equal(t, 4.56, *hs[0].Location.Longitude)

	// exponent and fractional literals are floating point
	hs, err = reconcile.Reconcile(json.RawMessage(`[{"Id":"Y","Latitude":1e0,"Longitude":2.0}]`), nil, nil)
	require.NoError(t, err)
	require.NotNil(t, hs[0].Location.Latitude)
	assert.Equal(t, 1.0, *hs[0].Location.Latitude)
	assert.Equal(t, 2.0, *hs[0].Location.Longitude)

	// an integer with nothing behind it stays null
	hs, err = reconcile.Reconcile(json.RawMessage(`[{"Id":"Z","Latitude":7}]`), nil, nil)
	require.NoError(t, err)
	assert.Nil(t, hs[0].Location.Latitude)
}

func TestReconcile_RoomImagesConcatenated(t *testing.T) {
	hs, err := reconcile.Reconcile(json.RawMessage(acmeFeed), json.RawMessage(patagoniaFeed), json.RawMessage(paperfliesFeed))
	require.NoError(t, err)

	h := byID(t, hs, "iJhz")
	require.Len(t, h.Images.Rooms, 3)
	assert.Equal(t, domain.Image{Link: "https://img/2.jpg", Description: "Double room"}, h.Images.Rooms[0])
	assert.Equal(t, domain.Image{Link: "https://img/4.jpg", Description: "Bathroom"}, h.Images.Rooms[1])
	assert.Equal(t, domain.Image{Link: "https://img/p2.jpg", Description: "Double room"}, h.Images.Rooms[2])
	assert.Equal(t, []domain.Image{{Link: "https://img/s1.jpg", Description: "Front"}}, h.Images.Site)
	assert.Equal(t, []domain.Image{{Link: "https://img/0.jpg", Description: "RWS"}}, h.Images.Amenities)
	assert.Equal(t, []string{"All children are welcome.", "Pets are not allowed."}, h.BookingConditions)
}

func TestReconcile_AcmeOnlyIdentityHasEmptyImagesNotNull(t *testing.T) {
	hs, err := reconcile.Reconcile(json.RawMessage(acmeFeed), nil, nil)
	require.NoError(t, err)

	h := byID(t, hs, "SjyX")
	assert.Nil(t, h.Location.Latitude)
	assert.Nil(t, h.Location.Longitude)

	b, err := json.Marshal(h)
	require.NoError(t, err)
	out := string(b)
	assert.Contains(t, out, `"rooms":[]`)
	assert.Contains(t, out, `"site":[]`)
	assert.Contains(t, out, `"amenities":null`)
	assert.Contains(t, out, `"booking_conditions":null`)
}

func TestReconcile_NoDataFromAnySupplier(t *testing.T) {
	for _, raw := range []json.RawMessage{nil, json.RawMessage(""), json.RawMessage("null"), json.RawMessage(" [] ")} {
		hs, err := reconcile.Reconcile(raw, raw, raw)
		require.NoError(t, err)
		assert.Empty(t, hs)
	}
}

func TestReconcile_MalformedShapeIsFatal(t *testing.T) {
	tests := []struct {
		name     string
		acme     string
		pat      string
		supplier reconcile.Supplier
		stage    string
	}{
		{"object instead of array", `{"Id":"x"}`, `[]`, reconcile.Acme, "shape"},
		{"element not object", `[]`, `[{"id":"a"}, 3]`, reconcile.Patagonia, "shape"},
		{"invalid json", `[{"Id":`, `[]`, reconcile.Acme, "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reconcile.Reconcile(json.RawMessage(tt.acme), json.RawMessage(tt.pat), nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, reconcile.ErrMalformedSource)

			var se *reconcile.SourceError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.supplier, se.Supplier)
			assert.Equal(t, tt.stage, se.Stage)
			assert.Contains(t, err.Error(), string(tt.supplier))
		})
	}
}

func TestReconcileReport_CountsSkippedRecords(t *testing.T) {
	rep, err := reconcile.ReconcileReport(
		json.RawMessage(`[{"Id":"a"},{"Name":"no id"},{"Id":null},{"Id":""}]`),
		json.RawMessage(`[{"id":"b"}]`),
		nil,
	)
	require.NoError(t, err)

	// "" is a key like any other; only missing and null keys are skipped
	assert.Equal(t, 2, rep.Records[reconcile.Acme])
	assert.Equal(t, 2, rep.Skipped[reconcile.Acme])
	assert.Equal(t, 1, rep.Records[reconcile.Patagonia])
	assert.Equal(t, 0, rep.Records[reconcile.Paperflies])
	assert.Equal(t, []string{"a", "", "b"}, ids(rep.Hotels))
}

func TestReconcile_Deterministic(t *testing.T) {
	first, err := reconcile.Reconcile(json.RawMessage(acmeFeed), json.RawMessage(patagoniaFeed), json.RawMessage(paperfliesFeed))
	require.NoError(t, err)
	second, err := reconcile.Reconcile(json.RawMessage(acmeFeed), json.RawMessage(patagoniaFeed), json.RawMessage(paperfliesFeed))
	require.NoError(t, err)

	b1, _ := json.Marshal(first)
	b2, _ := json.Marshal(second)
	assert.Equal(t, string(b1), string(b2))

	for _, h := range first {
		for _, s := range []string{h.Name, h.Description, h.Location.Address, h.Location.City, h.Location.Country} {
			assert.Equal(t, strings.TrimSpace(s), s, "hotel %s has untrimmed field %q", h.ID, s)
		}
	}
}
