package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"moments/internal/models/response_models"
	"moments/internal/repositories"
	"moments/pkg/logger"
	"moments/pkg/metrics"
	"moments/pkg/utils"
)

type GeocoderInterface interface {
	Geocode(ctx context.Context, address string) (*response_models.Coordinates, error)
}

type GeocoderConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	CacheTTL  time.Duration
	// RateLimit caps remote lookups. Zero means one per second, the public
	// Nominatim usage policy.
	RateLimit rate.Limit
}

// NominatimGeocoder resolves addresses with the OpenStreetMap search API.
// Results are cached when a cache is supplied. Remote calls are paced by a
// limiter shared across goroutines; cache hits are not.
type NominatimGeocoder struct {
	cfg     GeocoderConfig
	client  *http.Client
	cache   repositories.GeocodeCacheInterface
	limiter *rate.Limiter
	log     *logger.Logger
}

func NewNominatimGeocoder(cfg GeocoderConfig, cache repositories.GeocodeCacheInterface, log *logger.Logger) *NominatimGeocoder {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "moments-app/1.0"
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = rate.Every(time.Second)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &NominatimGeocoder{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		cache:   cache,
		limiter: rate.NewLimiter(cfg.RateLimit, 1),
		log:     log.With("service", "NominatimGeocoder"),
	}
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (*response_models.Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("%w: address is required", utils.ErrInvalidInput)
	}

	if g.cache != nil {
		started := time.Now()
		coords, ok, err := g.cache.Get(ctx, address)
		if err != nil {
			g.log.Warn("geocode cache read failed", "address", address, "error", err)
		} else if ok {
			metrics.ObserveGeocode("cache", started, nil)
			return coords, nil
		}
	}

	started := time.Now()
	coords, err := g.lookup(ctx, address)
	metrics.ObserveGeocode("remote", started, err)
	if err != nil {
		return nil, err
	}

	if g.cache != nil {
		if err := g.cache.Set(ctx, address, *coords, g.cfg.CacheTTL); err != nil {
			g.log.Warn("geocode cache write failed", "address", address, "error", err)
		}
	}
	return coords, nil
}

func (g *NominatimGeocoder) lookup(ctx context.Context, address string) (*response_models.Coordinates, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("nominatim rate limit: %w", err)
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("q", address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.BaseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", g.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decode nominatim response: %w", err)
	}
	if len(places) == 0 {
		return nil, utils.ErrAddressNotFound
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse latitude %q: %w", places[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse longitude %q: %w", places[0].Lon, err)
	}
	return &response_models.Coordinates{Lat: lat, Lon: lon, DisplayName: places[0].DisplayName}, nil
}

type LocationServiceInterface interface {
	Geocode(ctx context.Context, address string) (*response_models.Coordinates, error)
	ListLocations(ctx context.Context) ([]response_models.ActivityLocation, error)
}

type LocationService struct {
	enabled    bool
	geocoder   GeocoderInterface
	activities ActivityServiceInterface
	log        *logger.Logger
	parallel   int
}

func NewLocationService(enabled bool, geocoder GeocoderInterface, activities ActivityServiceInterface, log *logger.Logger) LocationServiceInterface {
	return &LocationService{
		enabled:    enabled,
		geocoder:   geocoder,
		activities: activities,
		log:        log.With("service", "LocationService"),
		parallel:   4,
	}
}

func (s *LocationService) Geocode(ctx context.Context, address string) (*response_models.Coordinates, error) {
	if !s.enabled {
		return nil, utils.ErrFeatureDisabled
	}
	return s.geocoder.Geocode(ctx, address)
}

// ListLocations geocodes every activity with an address. Lookups that fail
// are logged and the activity is left out.
func (s *LocationService) ListLocations(ctx context.Context) ([]response_models.ActivityLocation, error) {
	if !s.enabled {
		return nil, utils.ErrFeatureDisabled
	}

	activities, err := s.activities.ListActivities(ctx)
	if err != nil {
		return nil, err
	}

	found := make([]*response_models.Coordinates, len(activities))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel)
	for i, activity := range activities {
		if strings.TrimSpace(activity.Address) == "" {
			continue
		}
		g.Go(func() error {
			coords, err := s.geocoder.Geocode(gctx, activity.Address)
			if err != nil {
				s.log.Warn("geocode failed", "activity_id", activity.ID, "address", activity.Address, "error", err)
				return nil
			}
			found[i] = coords
			return nil
		})
	}
	_ = g.Wait()

	out := make([]response_models.ActivityLocation, 0, len(activities))
	for i, coords := range found {
		if coords == nil {
			continue
		}
		out = append(out, response_models.ActivityLocation{Activity: activities[i], Coordinates: *coords})
	}
	return out, nil
}
