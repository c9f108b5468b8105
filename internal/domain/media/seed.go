package media

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	photoSize = 240 * 1024
	videoSize = 5 * 1024 * 1024
)

// DefaultCatalogue returns the built-in seed list. A fresh slice is
// returned on every call so callers may reorder it freely.
func DefaultCatalogue() []Entry {
	return []Entry{
		{ID: 1, Src: "img/evoks.jpeg", Name: "website E-Voting", SizeBytes: photoSize, Kind: KindPhoto},
		{ID: 2, Src: "img/ujicoba.jpeg", Name: "Uji coba traffic website E-Voting", SizeBytes: photoSize, Kind: KindPhoto},
		{ID: 3, Src: "img/presentasi.jpeg", Name: "Presentasi Hasil website E-Voting", SizeBytes: photoSize, Kind: KindPhoto},
		{ID: 4, Src: "img/17an.jpeg", Name: "Kegiatan 17 Agustusan", SizeBytes: photoSize, Kind: KindPhoto},
		{ID: 5, Src: "img/17ann.jpeg", Name: "Kegiatan 17 Agustusan (2)", SizeBytes: photoSize, Kind: KindPhoto},
		{ID: 6, Src: "img/17.jpeg", Name: "Kegiatan 17 Agustusan (3)", SizeBytes: photoSize, Kind: KindPhoto},
		{ID: 7, Src: "img/apel.jpeg", Name: "Apel Pagi", SizeBytes: photoSize, Kind: KindPhoto},
		{ID: 8, Src: "img/bukutamu.jpeg", Name: "Pengecekan Buku Tamu", SizeBytes: photoSize, Kind: KindPhoto},
		{ID: 9, Src: "img/cap.jpeg", Name: "Kegiatan Pengecapan", SizeBytes: photoSize, Kind: KindPhoto},
		{ID: 10, Src: "img/flyer.jpeg", Name: "Pemasangan Flyer di RPP", SizeBytes: photoSize, Kind: KindPhoto},
		{ID: 11, Src: "img/kevin.jpeg", Name: "Kevin main gitar", SizeBytes: photoSize, Kind: KindPhoto},
		{ID: 12, Src: "img/menang.jpeg", Name: "Foto Kemenangan", SizeBytes: photoSize, Kind: KindPhoto},
		{ID: 13, Src: "img/monitoring.jpeg", Name: "Kegiatan Monitoring", SizeBytes: photoSize, Kind: KindPhoto},
		{ID: 14, Src: "img/nando.jpeg", Name: "Foto Nando menang", SizeBytes: photoSize, Kind: KindPhoto},
		{ID: 15, Src: "img/pkstmik.jpeg", Name: "Kegiatan PKS STMIK", SizeBytes: photoSize, Kind: KindPhoto},
		{ID: 16, Src: "img/pksuin.jpeg", Name: "Kegiatan PKS UIN", SizeBytes: photoSize, Kind: KindPhoto},
		{ID: 17, Src: "img/senam.jpeg", Name: "Kegiatan Senam Pagi", SizeBytes: photoSize, Kind: KindPhoto},
		{ID: 18, Src: "vid/angkut.mp4", Name: "angkut pallete", SizeBytes: videoSize, Kind: KindVideo},
		{ID: 19, Src: "vid/angkut2.mp4", Name: "angkut pallete", SizeBytes: videoSize, Kind: KindVideo},
	}
}

type seedFile struct {
	Entries []Entry `yaml:"entries"`
}

// LoadCatalogue reads a YAML seed file and validates it
func LoadCatalogue(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseCatalogue(data)
}

// ParseCatalogue decodes a YAML seed document of the form
//
//	entries:
//	  - id: 1
//	    src: img/a.jpeg
//	    name: A
//	    size: 1024
//	    type: photo
func ParseCatalogue(data []byte) ([]Entry, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	if err := ValidateCatalogue(f.Entries); err != nil {
		return nil, err
	}
	return f.Entries, nil
}
