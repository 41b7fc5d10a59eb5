package geocode_fx

import (
	"context"

	"go.uber.org/fx"

	"moments/internal/config"
	"moments/internal/infra"
	"moments/internal/repositories"
	"moments/internal/services"
	"moments/pkg/logger"
)

var Module = fx.Provide(
	provideGeocodeCache, provideGeocoder, provideLocationService)

// provideGeocodeCache returns a nil cache when REDIS_ADDR is unset or Redis
// is unreachable; lookups then always go to Nominatim.
func provideGeocodeCache(lc fx.Lifecycle, cfg config.Config, log *logger.Logger) repositories.GeocodeCacheInterface {
	if cfg.RedisAddr == "" {
		return nil
	}
	rdb, err := infra.NewRedisClient(context.Background(), cfg.RedisAddr)
	if err != nil {
		log.Warn("geocode cache disabled", "addr", cfg.RedisAddr, "error", err)
		return nil
	}
	lc.Append(fx.StopHook(rdb.Close))
	return repositories.NewRedisGeocodeCache(rdb)
}

func provideGeocoder(cfg config.Config, cache repositories.GeocodeCacheInterface, log *logger.Logger) services.GeocoderInterface {
	return services.NewNominatimGeocoder(services.GeocoderConfig{
		BaseURL:   cfg.NominatimURL,
		UserAgent: cfg.GeocodeUserAgent,
		Timeout:   cfg.GeocodeTimeout,
		CacheTTL:  cfg.GeocodeCacheTTL,
	}, cache, log)
}

func provideLocationService(
	cfg config.Config,
	geocoder services.GeocoderInterface,
	activities services.ActivityServiceInterface,
	log *logger.Logger,
) services.LocationServiceInterface {
	return services.NewLocationService(cfg.MapEnabled, geocoder, activities, log)
}
