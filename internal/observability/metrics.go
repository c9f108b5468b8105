package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"media-gallery/internal/domain/media"
	"media-gallery/internal/gallery"
)

const galleryInstrumentationName = "media-gallery/gallery"

// GalleryMetrics records gallery session activity
type GalleryMetrics struct {
	events          metric.Int64Counter
	deletions       metric.Int64Counter
	lightboxOpens   metric.Int64Counter
	playbackStopped metric.Int64Counter
}

var _ gallery.Recorder = (*GalleryMetrics)(nil)

// NewGalleryMetrics creates and registers gallery metrics
func NewGalleryMetrics(meter metric.Meter) (*GalleryMetrics, error) {
	events, err := meter.Int64Counter(
		"gallery.events",
		metric.WithDescription("Input events applied by the gallery session"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	deletions, err := meter.Int64Counter(
		"gallery.media.deleted",
		metric.WithDescription("Media entries removed from the collection"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	lightboxOpens, err := meter.Int64Counter(
		"gallery.lightbox.opened",
		metric.WithDescription("Lightbox openings"),
		metric.WithUnit("{open}"),
	)
	if err != nil {
		return nil, err
	}

	playbackStopped, err := meter.Int64Counter(
		"gallery.playback.stopped",
		metric.WithDescription("Video playbacks stopped by closing the lightbox"),
		metric.WithUnit("{stop}"),
	)
	if err != nil {
		return nil, err
	}

	return &GalleryMetrics{
		events:          events,
		deletions:       deletions,
		lightboxOpens:   lightboxOpens,
		playbackStopped: playbackStopped,
	}, nil
}

func (m *GalleryMetrics) EventApplied(ctx context.Context, t gallery.EventType) {
	m.events.Add(ctx, 1, metric.WithAttributes(attribute.String("gallery.event", string(t))))
}

func (m *GalleryMetrics) EntryDeleted(ctx context.Context, k media.Kind) {
	m.deletions.Add(ctx, 1, metric.WithAttributes(attribute.String("media.kind", string(k))))
}

func (m *GalleryMetrics) LightboxOpened(ctx context.Context, k media.Kind) {
	m.lightboxOpens.Add(ctx, 1, metric.WithAttributes(attribute.String("media.kind", string(k))))
}

func (m *GalleryMetrics) PlaybackStopped(ctx context.Context) {
	m.playbackStopped.Add(ctx, 1)
}

// GetGalleryMeter returns a meter for gallery metrics
func GetGalleryMeter() metric.Meter {
	return otelMeter(galleryInstrumentationName)
}
