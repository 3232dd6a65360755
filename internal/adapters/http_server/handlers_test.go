package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpserver "hotel_merge/internal/adapters/http_server"
	"hotel_merge/internal/adapters/memcache"
	"hotel_merge/internal/app"
	"hotel_merge/internal/domain"
	"hotel_merge/internal/storage"
)

type stubRepo struct {
	hotels  map[string]domain.Hotel
	lastQry domain.HotelsQuery
}

func (s *stubRepo) ReplaceAll(context.Context, []domain.Hotel) error { return nil }

func (s *stubRepo) GetHotel(_ context.Context, id string) (domain.Hotel, error) {
	h, ok := s.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

func (s *stubRepo) ListHotels(_ context.Context, q domain.HotelsQuery) (domain.HotelsPage, error) {
	s.lastQry = q
	if _, err := storage.DecodeCursor(q.Cursor); err != nil {
		return domain.HotelsPage{}, err
	}
	items := make([]domain.Hotel, 0, len(s.hotels))
	for _, h := range s.hotels {
		if q.DestinationID == nil || h.DestinationID == *q.DestinationID {
			items = append(items, h)
		}
	}
	return domain.HotelsPage{Items: items}, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *stubRepo) {
	t.Helper()
	repo := &stubRepo{hotels: map[string]domain.Hotel{
		"iJhz": {ID: "iJhz", DestinationID: "5432", Name: "Beach Villas Singapore"},
	}}
	q := app.NewQueryService(repo, memcache.New(time.Minute), time.Minute)

	srv := httpserver.New(5 * time.Second)
	srv.MountHandlers(&httpserver.Handlers{Q: q})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts, repo
}

func get(t *testing.T, url string, hdr map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)
	res := get(t, ts.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestGetHotel_OKThenNotModified(t *testing.T) {
	ts, _ := newTestServer(t)

	res := get(t, ts.URL+"/v1/hotels/iJhz", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
	etag := res.Header.Get("ETag")
	require.NotEmpty(t, etag)

	var body map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "iJhz", body["hotel_id"])
	assert.Equal(t, "5432", body["destination_id"])
	assert.Nil(t, body["amenities"])
	assert.Contains(t, body, "booking_conditions")

	res = get(t, ts.URL+"/v1/hotels/iJhz", map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, res.StatusCode)
	assert.Equal(t, etag, res.Header.Get("ETag"))
}

func TestGetHotel_NotFoundIsProblem(t *testing.T) {
	ts, _ := newTestServer(t)

	// ids are case-sensitive
	res := get(t, ts.URL+"/v1/hotels/IJHZ", nil)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "application/problem+json", res.Header.Get("Content-Type"))

	var p struct {
		Title  string `json:"title"`
		Status int    `json:"status"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&p))
	assert.Equal(t, http.StatusNotFound, p.Status)
}

func TestListHotels_Params(t *testing.T) {
	ts, repo := newTestServer(t)

	res := get(t, ts.URL+"/v1/hotels", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 50, repo.lastQry.Limit)
	assert.Nil(t, repo.lastQry.DestinationID)

	res = get(t, ts.URL+"/v1/hotels?destination=5432&limit=10", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NotNil(t, repo.lastQry.DestinationID)
	assert.Equal(t, "5432", *repo.lastQry.DestinationID)
	assert.Equal(t, 10, repo.lastQry.Limit)

	var page domain.HotelsPage
	require.NoError(t, json.NewDecoder(res.Body).Decode(&page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "iJhz", page.Items[0].ID)
}

func TestListHotels_BadInput(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, path := range []string{
		"/v1/hotels?limit=0",
		"/v1/hotels?limit=201",
		"/v1/hotels?limit=ten",
		"/v1/hotels?cursor=nope",
	} {
		res := get(t, ts.URL+path, nil)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, path)
		assert.Equal(t, "application/problem+json", res.Header.Get("Content-Type"), path)
	}
}

func TestUnknownRouteIsProblem(t *testing.T) {
	ts, _ := newTestServer(t)
	res := get(t, ts.URL+"/v2/nothing", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "application/problem+json", res.Header.Get("Content-Type"))
}
