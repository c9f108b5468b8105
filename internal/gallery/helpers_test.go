package gallery

import (
	"context"
	"sync"

	"media-gallery/internal/domain/media"
)

// scriptedRand replays values, each reduced modulo n
type scriptedRand struct {
	values []int
	next   int
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.next%len(r.values)]
	r.next++
	return v % n
}

// identityRand always picks the highest index, so Fisher-Yates leaves the
// order untouched and heights land at the top of the band
type identityRand struct{}

func (identityRand) IntN(n int) int {
	return n - 1
}

func entriesWithIDs(ids ...int) []media.Entry {
	out := make([]media.Entry, 0, len(ids))
	for _, id := range ids {
		out = append(out, media.Entry{ID: id, Src: "img/x.jpeg", Name: "x", SizeBytes: 1024, Kind: media.KindPhoto})
	}
	return out
}

func ids(entries []media.Entry) []int {
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

// scenarioSeed is 17 photos followed by 2 videos
func scenarioSeed() []media.Entry {
	return media.DefaultCatalogue()
}

type recordingEffects struct {
	suspends int
	restores int
	stopped  []media.Entry
}

func (r *recordingEffects) SuspendScroll() {
	r.suspends++
}

func (r *recordingEffects) RestoreScroll() {
	r.restores++
}

func (r *recordingEffects) StopPlayback(e media.Entry) {
	r.stopped = append(r.stopped, e)
}

type memoryDeletionLog struct {
	mu  sync.Mutex
	ids []int
	rec chan int
}

func newMemoryDeletionLog() *memoryDeletionLog {
	return &memoryDeletionLog{rec: make(chan int, 16)}
}

func (m *memoryDeletionLog) Record(_ context.Context, id int) error {
	m.mu.Lock()
	m.ids = append(m.ids, id)
	m.mu.Unlock()
	m.rec <- id
	return nil
}

func (m *memoryDeletionLog) Deleted(context.Context) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.ids...), nil
}

type countingSurface struct {
	mu       sync.Mutex
	presents int
	last     Snapshot
}

func (c *countingSurface) Present(snap Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.presents++
	c.last = snap
}

type countingRecorder struct {
	events  map[EventType]int
	deleted int
	opened  int
	stopped int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{events: make(map[EventType]int)}
}

func (c *countingRecorder) EventApplied(_ context.Context, t EventType) {
	c.events[t]++
}

func (c *countingRecorder) EntryDeleted(context.Context, media.Kind) {
	c.deleted++
}

func (c *countingRecorder) LightboxOpened(context.Context, media.Kind) {
	c.opened++
}

func (c *countingRecorder) PlaybackStopped(context.Context) {
	c.stopped++
}
