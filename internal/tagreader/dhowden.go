// Package tagreader implements the TagReader port on top of dhowden/tag.
package tagreader

import (
	"os"

	"github.com/dhowden/tag"

	"github.com/boombafm/boombafm/internal/ports"
)

// Reader reads ID3/Vorbis/MP4 metadata from audio files.
type Reader struct{}

// New creates a new tag reader.
func New() *Reader {
	return &Reader{}
}

// Read extracts the textual tags and embedded artwork from the file at path.
// Fields the file does not carry come back empty; the caller substitutes
// placeholders. Unreadable or tagless files return an error.
func (r *Reader) Read(path string) (ports.TagData, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.TagData{}, err
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return ports.TagData{}, err
	}

	data := ports.TagData{
		Title:  meta.Title(),
		Artist: meta.Artist(),
		Album:  meta.Album(),
		Genre:  meta.Genre(),
	}
	if pic := meta.Picture(); pic != nil {
		data.Artwork = pic.Data
	}
	return data, nil
}

// Verify interface implementation
var _ ports.TagReader = (*Reader)(nil)
