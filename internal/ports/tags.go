package ports

// TagData holds the optional metadata a tag reader can extract from a file.
// Empty strings mean the tag was absent; the scanner substitutes placeholders.
type TagData struct {
	Title   string
	Artist  string
	Album   string
	Genre   string
	Artwork []byte
}

// TagReader extracts metadata from an audio file.
//
// A failed read is a per-file condition: the scanner degrades that file to
// placeholder metadata and keeps going, so implementations should return the
// error rather than guessing.
type TagReader interface {
	Read(path string) (TagData, error)
}
