package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-gallery/internal/domain/media"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0 Bytes"},
		{1, "1 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1500, "1.46 KB"},
		{245760, "240 KB"},
		{5242880, "5 MB"},
		{1073741824, "1 GB"},
		{5 * 1024 * 1024 * 1024 * 1024, "5120 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatSize(tt.bytes))
		})
	}
}

func TestBadge(t *testing.T) {
	assert.Equal(t, "PHOTO", Badge(media.KindPhoto))
	assert.Equal(t, "VIDEO", Badge(media.KindVideo))
}

func TestRenderer_Render(t *testing.T) {
	entries := []media.Entry{
		{ID: 3, Src: "img/a.jpeg", Name: "A", SizeBytes: 245760, Kind: media.KindPhoto},
		{ID: 18, Src: "vid/b.mp4", Name: "B", SizeBytes: 5242880, Kind: media.KindVideo},
	}
	r := NewRenderer(&scriptedRand{values: []int{0, 150}})

	view := r.Render(entries)

	require.False(t, view.Empty)
	require.Len(t, view.Tiles, 2)
	assert.Equal(t, Tile{
		ID: 3, Src: "img/a.jpeg", Name: "A", Kind: media.KindPhoto,
		Badge: "PHOTO", Size: "240 KB", Height: 200, DeleteID: 3, Loading: true,
	}, view.Tiles[0])
	assert.Equal(t, "VIDEO", view.Tiles[1].Badge)
	assert.Equal(t, "5 MB", view.Tiles[1].Size)
	assert.Equal(t, 350, view.Tiles[1].Height)
	assert.Equal(t, 18, view.Tiles[1].DeleteID)
}

func TestRenderer_HeightsRedrawnEveryPass(t *testing.T) {
	entries := entriesWithIDs(1)
	r := NewRenderer(&scriptedRand{values: []int{10, 90}})

	first := r.Render(entries)
	second := r.Render(entries)

	assert.Equal(t, 210, first.Tiles[0].Height)
	assert.Equal(t, 290, second.Tiles[0].Height)
}

func TestRenderer_HeightBand(t *testing.T) {
	low := NewRenderer(&scriptedRand{values: []int{0}}).Render(entriesWithIDs(1))
	high := NewRenderer(identityRand{}).Render(entriesWithIDs(1))

	assert.Equal(t, MinTileHeight, low.Tiles[0].Height)
	assert.Equal(t, MinTileHeight+TileHeightBand-1, high.Tiles[0].Height)
}

func TestRenderer_EmptyState(t *testing.T) {
	r := NewRenderer(identityRand{})

	view := r.Render(nil)

	assert.True(t, view.Empty)
	assert.Empty(t, view.Tiles)
}
