package services

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	mathrand "math/rand/v2"

	"media-gallery/internal/config"
	"media-gallery/internal/domain/media"
	"media-gallery/internal/gallery"
	"media-gallery/internal/observability"
	"media-gallery/internal/platform/cache"
	"media-gallery/internal/platform/storage"
)

// HealthChecker is a dependency probed by the readiness endpoint
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Container holds all the application dependencies
type Container struct {
	config *config.Config
	logger *observability.Logger

	catalogue []media.Entry
	sources   map[string]struct{}

	// Infrastructure
	redisClient *cache.RedisClient
	assets      storage.Assets

	session *gallery.Session
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Container, error) {
	c := &Container{
		config: cfg,
		logger: logger,
	}

	if err := c.initializeServices(ctx); err != nil {
		return nil, errors.Join(err, c.Close())
	}

	return c, nil
}

// initializeServices initializes all services in the correct dependency order
func (c *Container) initializeServices(ctx context.Context) error {
	catalogue, err := LoadSeed(c.config.Media)
	if err != nil {
		return err
	}
	c.catalogue = catalogue
	c.sources = make(map[string]struct{}, len(catalogue))
	for _, e := range catalogue {
		c.sources[e.Src] = struct{}{}
	}

	if c.config.Cache.Enabled {
		c.redisClient, err = cache.NewRedisClient(c.config.Cache)
		if err != nil {
			return fmt.Errorf("failed to connect to cache: %w", err)
		}
	}

	switch c.config.Assets.Backend {
	case config.AssetsBackendMinIO:
		minioClient, err := storage.NewMinIOClient(ctx, c.config.Storage, c.config.Assets.URLExpiry)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		c.assets = minioClient
	default:
		c.assets = storage.NewLocalAssets(c.config.Assets.Dir)
	}

	seed := catalogue
	if c.redisClient != nil {
		deleted, err := c.redisClient.Deleted(ctx)
		if err != nil {
			// The log is advisory; serve the full catalogue rather than nothing
			c.logger.Warn(ctx).Err(err).Msg("Failed to read persisted deletions")
		} else {
			seed = media.ExcludeDeleted(catalogue, deleted)
		}
	}

	rng, err := NewRandomSource(c.config.Media.ShuffleSeed)
	if err != nil {
		return err
	}

	opts := []gallery.Option{
		gallery.WithLogger(c.logger.Component("gallery")),
	}
	if c.redisClient != nil {
		opts = append(opts, gallery.WithDeletionLog(c.redisClient))
	}
	metrics, err := observability.NewGalleryMetrics(observability.GetGalleryMeter())
	if err != nil {
		c.logger.Warn(ctx).Err(err).Msg("Failed to create gallery metrics")
	} else {
		opts = append(opts, gallery.WithRecorder(metrics))
	}

	c.session = gallery.NewSession(seed, rng, opts...)

	c.logger.Info(ctx).
		Int("catalogue", len(catalogue)).
		Int("visible", len(seed)).
		Str("assets", c.config.Assets.Backend).
		Bool("persistence", c.redisClient != nil).
		Msg("Dependency injection container initialized successfully")
	return nil
}

// LoadSeed returns the seed file catalogue when configured, else the built-in one
func LoadSeed(cfg config.MediaConfig) ([]media.Entry, error) {
	if cfg.SeedFile == "" {
		return media.DefaultCatalogue(), nil
	}
	entries, err := media.LoadCatalogue(cfg.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed file: %w", err)
	}
	return entries, nil
}

// NewRandomSource returns a PCG generator. A zero seed draws one from crypto/rand.
func NewRandomSource(seed uint64) (*mathrand.Rand, error) {
	if seed == 0 {
		var b [8]byte
		if _, err := rand.Read(b[:]); err != nil {
			return nil, fmt.Errorf("failed to seed random source: %w", err)
		}
		seed = binary.LittleEndian.Uint64(b[:])
	}
	return mathrand.New(mathrand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), nil
}

// Getters for accessing services

func (c *Container) Config() *config.Config {
	return c.config
}

func (c *Container) Logger() *observability.Logger {
	return c.logger
}

func (c *Container) Session() *gallery.Session {
	return c.session
}

func (c *Container) Assets() storage.Assets {
	return c.assets
}

// KnownSource reports whether src belongs to the seed catalogue
func (c *Container) KnownSource(src string) bool {
	_, ok := c.sources[src]
	return ok
}

// Dependencies lists the backends probed for readiness
func (c *Container) Dependencies() map[string]HealthChecker {
	deps := map[string]HealthChecker{}
	if c.assets != nil {
		deps["assets"] = c.assets
	}
	if c.redisClient != nil {
		deps["cache"] = c.redisClient
	}
	return deps
}

// Close cleans up resources
func (c *Container) Close() error {
	if c.redisClient != nil {
		return c.redisClient.Close()
	}
	return nil
}
