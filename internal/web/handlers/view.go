package handlers

import (
	"media-gallery/internal/domain/media"
	"media-gallery/internal/gallery"
)

type filterButton struct {
	ID     string
	Filter media.Filter
	Label  string
	Count  int
	Active bool
}

type pageData struct {
	gallery.Snapshot
	Buttons []filterButton
}

func newPageData(snap gallery.Snapshot) pageData {
	p := pageData{
		Snapshot: snap,
		Buttons: []filterButton{
			{ID: "showAll", Filter: media.FilterAll, Label: "All Media", Count: snap.Counts.Total},
			{ID: "showPhotos", Filter: media.FilterPhoto, Label: "Photos", Count: snap.Counts.Photos},
			{ID: "showVideos", Filter: media.FilterVideo, Label: "Videos", Count: snap.Counts.Videos},
		},
	}
	for i := range p.Buttons {
		p.Buttons[i].Active = p.Buttons[i].Filter == snap.Filter
	}
	return p
}
