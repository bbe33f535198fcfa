package uploader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// File is one item of an upload batch. Open is called at most once, after
// the file has been authorized.
type File struct {
	Name        string
	ContentType string
	// Size is the exact byte count, or -1 when unknown.
	Size int64
	Open func() (io.ReadCloser, error)
}

// BytesFile wraps an in-memory payload.
func BytesFile(name, contentType string, data []byte) File {
	return File{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// LocalFile describes a file on disk. The object name is the base name and
// the content type is sniffed from the file contents.
func LocalFile(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("%s is a directory", path)
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return File{}, fmt.Errorf("detecting content type of %s: %w", path, err)
	}

	return File{
		Name:        filepath.Base(path),
		ContentType: mtype.String(),
		Size:        info.Size(),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}
