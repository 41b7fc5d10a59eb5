package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"moments/internal/models/request_models"
	"moments/internal/models/response_models"
	"moments/pkg/logger"
	"moments/pkg/utils"
)

type mapCache struct {
	mu   sync.Mutex
	data map[string]response_models.Coordinates
}

func (c *mapCache) Get(_ context.Context, address string) (*response_models.Coordinates, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	coords, ok := c.data[address]
	if !ok {
		return nil, false, nil
	}
	return &coords, true, nil
}

func (c *mapCache) Set(_ context.Context, address string, coords response_models.Coordinates, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[address] = coords
	return nil
}

func newNominatimServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "moments-test", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("q") {
		case "Mont Royal":
			_, _ = w.Write([]byte(`[{"lat":"45.5048","lon":"-73.5878","display_name":"Mont Royal, Montreal"}]`))
		case "broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNominatimGeocoderCachesHits(t *testing.T) {
	var hits int32
	srv := newNominatimServer(t, &hits)
	cache := &mapCache{data: map[string]response_models.Coordinates{}}
	g := NewNominatimGeocoder(GeocoderConfig{BaseURL: srv.URL + "/", UserAgent: "moments-test", RateLimit: rate.Inf}, cache, logger.NewNop())

	for i := 0; i < 2; i++ {
		coords, err := g.Geocode(context.Background(), "Mont Royal")
		require.NoError(t, err)
		assert.InDelta(t, 45.5048, coords.Lat, 1e-9)
		assert.InDelta(t, -73.5878, coords.Lon, 1e-9)
		assert.Equal(t, "Mont Royal, Montreal", coords.DisplayName)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestNominatimGeocoderErrors(t *testing.T) {
	var hits int32
	srv := newNominatimServer(t, &hits)
	g := NewNominatimGeocoder(GeocoderConfig{BaseURL: srv.URL, UserAgent: "moments-test", RateLimit: rate.Inf}, nil, logger.NewNop())
	ctx := context.Background()

	_, err := g.Geocode(ctx, "nowhere")
	require.ErrorIs(t, err, utils.ErrAddressNotFound)

	_, err = g.Geocode(ctx, "broken")
	require.Error(t, err)

	_, err = g.Geocode(ctx, "  ")
	require.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestNominatimGeocoderPacesRemoteLookups(t *testing.T) {
	var hits int32
	srv := newNominatimServer(t, &hits)
	g := NewNominatimGeocoder(GeocoderConfig{
		BaseURL:   srv.URL,
		UserAgent: "moments-test",
		RateLimit: rate.Every(50 * time.Millisecond),
	}, nil, logger.NewNop())

	started := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = g.Geocode(context.Background(), "Mont Royal")
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
	assert.GreaterOrEqual(t, time.Since(started), 90*time.Millisecond)
}

func TestNominatimGeocoderRateLimitHonoursContext(t *testing.T) {
	var hits int32
	srv := newNominatimServer(t, &hits)
	g := NewNominatimGeocoder(GeocoderConfig{
		BaseURL:   srv.URL,
		UserAgent: "moments-test",
		RateLimit: rate.Every(time.Hour),
	}, nil, logger.NewNop())

	_, err := g.Geocode(context.Background(), "Mont Royal")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = g.Geocode(ctx, "Mont Royal")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

type fakeGeocoder map[string]response_models.Coordinates

func (f fakeGeocoder) Geocode(_ context.Context, address string) (*response_models.Coordinates, error) {
	coords, ok := f[address]
	if !ok {
		return nil, errors.New("lookup failed")
	}
	return &coords, nil
}

func TestListLocationsSkipsUnresolvedAddresses(t *testing.T) {
	activities := newActivityService(nil)
	ctx := context.Background()
	for _, req := range []request_models.ActivityRequest{
		{Title: "Hike", Date: "2025-06-07", Address: "Mont Royal"},
		{Title: "Home", Date: "2025-06-08"},
		{Title: "Lost", Date: "2025-06-09", Address: "Atlantis"},
	} {
		_, err := activities.CreateActivity(ctx, req)
		require.NoError(t, err)
	}

	geocoder := fakeGeocoder{"Mont Royal": {Lat: 45.5, Lon: -73.6}}
	svc := NewLocationService(true, geocoder, activities, logger.NewNop())

	locations, err := svc.ListLocations(ctx)
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "Hike", locations[0].Activity.Title)
	assert.Equal(t, 45.5, locations[0].Coordinates.Lat)
}

func TestLocationServiceDisabled(t *testing.T) {
	svc := NewLocationService(false, fakeGeocoder{}, newActivityService(nil), logger.NewNop())

	_, err := svc.ListLocations(context.Background())
	require.ErrorIs(t, err, utils.ErrFeatureDisabled)
	_, err = svc.Geocode(context.Background(), "Mont Royal")
	require.ErrorIs(t, err, utils.ErrFeatureDisabled)
}
