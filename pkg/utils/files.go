package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// IsSize reports whether filename's size on disk matches size exactly.
func IsSize(filename string, size int64) bool {
	f, err := os.Open(filename)
	if err != nil {
		return false
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Size() == size
}

// LoadFile loads the given ROM file, transparently decompressing it if its
// extension names a supported archive format. Game Gear/Master System
// images (.gg, .sms, .rom) are returned as-is.
func LoadFile(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gg", ".sms", ".rom", ".bin":
		return data, nil
	}

	var decoder io.Reader
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".zip":
		zipReader, zerr := zip.NewReader(f, int64(len(data)))
		if zerr != nil {
			return nil, zerr
		}
		decoder, err = zipReader.File[0].Open()
	case ".7z":
		r, zerr := sevenzip.NewReader(f, int64(len(data)))
		if zerr != nil {
			return nil, zerr
		}
		decoder, err = r.File[0].Open()
	default:
		return data, nil
	}

	if err != nil {
		return nil, err
	}

	return io.ReadAll(decoder)
}
