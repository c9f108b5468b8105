package gallery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"media-gallery/internal/domain/media"
)

var (
	ErrSessionClosed = errors.New("gallery session closed")
	ErrUnknownEvent  = errors.New("unknown gallery event")
)

const (
	deletionQueueSize = 64
	persistTimeout    = 3 * time.Second
)

// Snapshot is the state handed to the rendering surface after each event
type Snapshot struct {
	Filter       media.Filter `json:"filter"`
	Counts       media.Counts `json:"counts"`
	View         View         `json:"view"`
	Lightbox     *media.Entry `json:"lightbox,omitempty"`
	ScrollLocked bool         `json:"scroll_locked"`
}

// Surface is notified with every snapshot the session produces
type Surface interface {
	Present(snap Snapshot)
}

// Recorder receives gallery metrics
type Recorder interface {
	EventApplied(ctx context.Context, t EventType)
	EntryDeleted(ctx context.Context, k media.Kind)
	LightboxOpened(ctx context.Context, k media.Kind)
	PlaybackStopped(ctx context.Context)
}

// Option configures a Session
type Option func(*Session)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithDeletionLog persists deletions in the background
func WithDeletionLog(log media.DeletionLog) Option {
	return func(s *Session) { s.deletionLog = log }
}

func WithSurface(surface Surface) Option {
	return func(s *Session) { s.surface = surface }
}

func WithRecorder(rec Recorder) Option {
	return func(s *Session) { s.recorder = rec }
}

// WithEffects adds an observer of lightbox side effects
func WithEffects(e Effects) Option {
	return func(s *Session) { s.extraEffects = e }
}

type request struct {
	ctx   context.Context
	event Event
	reply chan Snapshot
}

// Session is the single owner of the gallery state. Events submitted with
// Dispatch are applied one at a time, to completion, by the goroutine
// running Run.
type Session struct {
	store    *Store
	lightbox *Lightbox
	renderer *Renderer

	logger       zerolog.Logger
	deletionLog  media.DeletionLog
	surface      Surface
	recorder     Recorder
	extraEffects Effects

	// touched only by the loop goroutine
	scrollLocked bool
	eventCtx     context.Context

	requests  chan request
	deletions chan int
	done      chan struct{}
	runOnce   sync.Once
}

// NewSession shuffles seed into a new store. The same rng drives the
// shuffle and the tile heights.
func NewSession(seed []media.Entry, rng media.RandomSource, opts ...Option) *Session {
	s := &Session{
		store:    NewStore(rng),
		renderer: NewRenderer(rng),
		logger:   zerolog.Nop(),
		eventCtx: context.Background(),
		requests: make(chan request),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lightbox = NewLightbox(sessionEffects{s})
	s.store.Initialize(seed)
	if s.deletionLog != nil {
		s.deletions = make(chan int, deletionQueueSize)
	}
	return s
}

// Run serves events until ctx is cancelled. It must be called once.
func (s *Session) Run(ctx context.Context) error {
	started := false
	s.runOnce.Do(func() { started = true })
	if !started {
		return errors.New("gallery session already running")
	}
	defer close(s.done)

	var wg sync.WaitGroup
	if s.deletions != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.persistDeletions()
		}()
		defer func() {
			close(s.deletions)
			wg.Wait()
		}()
	}

	counts := s.store.Counts()
	s.logger.Info().
		Int("total", counts.Total).
		Int("photos", counts.Photos).
		Int("videos", counts.Videos).
		Msg("Gallery session started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Gallery session stopped")
			return nil
		case req := <-s.requests:
			req.reply <- s.apply(req.ctx, req.event)
		}
	}
}

// Dispatch submits ev to the loop and waits for the resulting snapshot
func (s *Session) Dispatch(ctx context.Context, ev Event) (Snapshot, error) {
	if !ev.Type.valid() {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}

	req := request{ctx: ctx, event: ev, reply: make(chan Snapshot, 1)}
	select {
	case s.requests <- req:
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	case <-s.done:
		return Snapshot{}, ErrSessionClosed
	}

	select {
	case snap := <-req.reply:
		return snap, nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Render asks for a fresh render pass without changing state
func (s *Session) Render(ctx context.Context) (Snapshot, error) {
	return s.Dispatch(ctx, Refresh())
}

func (s *Session) apply(ctx context.Context, ev Event) Snapshot {
	s.eventCtx = ctx
	defer func() { s.eventCtx = context.Background() }()

	switch ev.Type {
	case EventFilterSelected:
		s.store.SetFilter(ev.Filter)

	case EventTileActivated:
		if e, ok := s.store.Lookup(ev.ID); ok {
			s.lightbox.Open(e)
			if s.recorder != nil {
				s.recorder.LightboxOpened(ctx, e.Kind)
			}
		}

	case EventDeleteActivated:
		s.delete(ctx, ev.ID)

	case EventCloseActivated, EventBackdropClicked, EventEscapePressed:
		s.lightbox.Close()
	}

	if s.recorder != nil {
		s.recorder.EventApplied(ctx, ev.Type)
	}

	snap := s.snapshot()
	if s.surface != nil {
		s.surface.Present(snap)
	}
	return snap
}

func (s *Session) delete(ctx context.Context, id int) {
	removed, ok := s.store.Delete(id)
	if !ok {
		return
	}

	// the lightbox must never show an entry that left the collection
	if open, isOpen := s.lightbox.Current(); isOpen && open.ID == removed.ID {
		s.lightbox.Close()
	}

	if s.recorder != nil {
		s.recorder.EntryDeleted(ctx, removed.Kind)
	}
	s.logger.Info().Int("media_id", id).Str("kind", string(removed.Kind)).Msg("Media entry deleted")

	if s.deletions == nil {
		return
	}
	select {
	case s.deletions <- id:
	default:
		s.logger.Warn().Int("media_id", id).Msg("Deletion queue full, deletion not persisted")
	}
}

func (s *Session) persistDeletions() {
	for id := range s.deletions {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		if err := s.deletionLog.Record(ctx, id); err != nil {
			s.logger.Warn().Err(err).Int("media_id", id).Msg("Failed to persist deletion")
		}
		cancel()
	}
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		Filter:       s.store.Filter(),
		Counts:       s.store.Counts(),
		View:         s.renderer.Render(s.store.Visible()),
		ScrollLocked: s.scrollLocked,
	}
	if e, ok := s.lightbox.Current(); ok {
		snap.Lightbox = &e
	}
	return snap
}

type sessionEffects struct {
	s *Session
}

func (fx sessionEffects) SuspendScroll() {
	fx.s.scrollLocked = true
	if fx.s.extraEffects != nil {
		fx.s.extraEffects.SuspendScroll()
	}
}

func (fx sessionEffects) RestoreScroll() {
	fx.s.scrollLocked = false
	if fx.s.extraEffects != nil {
		fx.s.extraEffects.RestoreScroll()
	}
}

func (fx sessionEffects) StopPlayback(e media.Entry) {
	fx.s.logger.Debug().Int("media_id", e.ID).Msg("Video playback stopped")
	if fx.s.recorder != nil {
		fx.s.recorder.PlaybackStopped(fx.s.eventCtx)
	}
	if fx.s.extraEffects != nil {
		fx.s.extraEffects.StopPlayback(e)
	}
}

// Done is closed once Run has returned
func (s *Session) Done() <-chan struct{} {
	return s.done
}
