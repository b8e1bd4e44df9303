// Package library owns the song catalog: scanning the music directory,
// building Song records, and deriving the filtered/sorted view.
package library

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/boombafm/boombafm/internal/domain"
	"github.com/boombafm/boombafm/internal/ports"
)

// defaultExtensions is the allow-list of recognized audio file extensions.
var defaultExtensions = []string{
	".mp3", ".wav", ".flac", ".ogg", ".oga", ".m4a", ".aac",
}

// Scanner walks a music directory and produces Song records.
//
// Metadata extraction failures degrade per file to placeholder values; a scan
// only fails when the directory itself cannot be walked. A missing root is
// created empty rather than treated as an error.
type Scanner struct {
	logger *slog.Logger
	tags   ports.TagReader
	exts   []string
}

// NewScanner creates a scanner using the default extension allow-list.
func NewScanner(logger *slog.Logger, tags ports.TagReader) *Scanner {
	return &Scanner{
		logger: logger,
		tags:   tags,
		exts:   defaultExtensions,
	}
}

// IsSupported reports whether the path carries a recognized audio extension.
func (s *Scanner) IsSupported(path string) bool {
	return lo.Contains(s.exts, strings.ToLower(filepath.Ext(path)))
}

// Scan walks root recursively and returns a Song for every supported file.
// The order of the result is traversal order; display ordering is the
// catalog view's concern, not the scanner's.
func (s *Scanner) Scan(root string) ([]domain.Song, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		s.logger.Info("music directory missing, creating it", slog.String("root", root))
		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, err
		}
		return []domain.Song{}, nil
	}

	songs := make([]domain.Song, 0)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal
			s.logger.Warn("skipping unreadable entry", slog.String("path", path), slog.Any("error", err))
			return nil
		}
		if d.IsDir() || !s.IsSupported(path) {
			return nil
		}
		songs = append(songs, s.readSong(path))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("scan finished", slog.String("root", root), slog.Int("songs", len(songs)))
	return songs, nil
}

// readSong builds a Song for one file, substituting placeholders for
// anything the tag reader could not provide.
func (s *Scanner) readSong(path string) domain.Song {
	song := domain.Song{
		Path:   path,
		Title:  titleFromPath(path),
		Artist: domain.UnknownArtist,
		Album:  domain.UnknownAlbum,
		Genre:  domain.UnknownGenre,
	}

	data, err := s.tags.Read(path)
	if err != nil {
		s.logger.Debug("tag read failed, using placeholders",
			slog.String("path", path), slog.Any("error", err))
		return song
	}

	if data.Title != "" {
		song.Title = data.Title
	}
	if data.Artist != "" {
		song.Artist = data.Artist
	}
	if data.Album != "" {
		song.Album = data.Album
	}
	if data.Genre != "" {
		song.Genre = data.Genre
	}
	song.Artwork = data.Artwork
	return song
}

// titleFromPath returns the filename without its extension.
func titleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
