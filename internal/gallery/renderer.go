package gallery

import (
	"math"
	"strconv"

	"media-gallery/internal/domain/media"
)

const (
	// MinTileHeight and TileHeightBand bound the masonry height hint to
	// [MinTileHeight, MinTileHeight+TileHeightBand)
	MinTileHeight  = 200
	TileHeightBand = 200
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// Tile describes one grid cell independent of markup
type Tile struct {
	ID       int        `json:"id"`
	Src      string     `json:"src"`
	Name     string     `json:"name"`
	Kind     media.Kind `json:"type"`
	Badge    string     `json:"badge"`
	Size     string     `json:"size"`
	Height   int        `json:"height"`
	DeleteID int        `json:"delete_id"`
	Loading  bool       `json:"loading"`
}

// View is the output of one render pass
type View struct {
	Tiles []Tile `json:"tiles"`
	Empty bool   `json:"empty"`
}

// Renderer maps the visible entries to tiles. The only state it keeps is
// its random source; heights are drawn again on every pass.
type Renderer struct {
	rng media.RandomSource
}

func NewRenderer(rng media.RandomSource) *Renderer {
	return &Renderer{rng: rng}
}

// Render produces the tiles for entries, or an empty view
func (r *Renderer) Render(entries []media.Entry) View {
	if len(entries) == 0 {
		return View{Empty: true}
	}

	tiles := make([]Tile, 0, len(entries))
	for _, e := range entries {
		tiles = append(tiles, Tile{
			ID:       e.ID,
			Src:      e.Src,
			Name:     e.Name,
			Kind:     e.Kind,
			Badge:    Badge(e.Kind),
			Size:     FormatSize(e.SizeBytes),
			Height:   MinTileHeight + r.rng.IntN(TileHeightBand),
			DeleteID: e.ID,
			Loading:  true,
		})
	}
	return View{Tiles: tiles}
}

// Badge returns the label shown on a tile of kind k
func Badge(k media.Kind) string {
	if k == media.KindVideo {
		return "VIDEO"
	}
	return "PHOTO"
}

// FormatSize renders a byte count with two decimals at most, e.g. "240 KB"
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	const k = 1024
	i, div := 0, int64(1)
	for i < len(sizeUnits)-1 && bytes >= div*k {
		div *= k
		i++
	}

	value := math.Round(float64(bytes)/float64(div)*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[i]
}
