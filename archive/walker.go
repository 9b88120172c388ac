// Package archive builds Walk abstraction on top of "archive/zip".
package archive

import (
	"archive/zip"
	"path"
	"slices"
	"strings"

	"github.com/maruel/natural"
	"golang.org/x/text/encoding"
)

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to
// Walk, name is decoded entry name and file is the entry itself. If an error
// is returned, processing stops.
type WalkFunc func(archive, name string, file *zip.File) error

// Walk walks all files in the archive whose names start with prefix in
// natural name order, calling walkFn for each item. Names not marked as UTF-8
// are decoded with cp when it is not nil. Entries with path traversal
// components ("..") or absolute paths are silently skipped.
func Walk(archive, prefix string, cp encoding.Encoding, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	type item struct {
		name string
		file *zip.File
	}

	items := make([]item, 0, len(r.File))
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := decodeName(f, cp)
		if !isSafePath(name) || !strings.HasPrefix(name, prefix) {
			continue
		}
		items = append(items, item{name: name, file: f})
	}
	slices.SortStableFunc(items, func(a, b item) int {
		switch {
		case natural.Less(a.name, b.name):
			return -1
		case natural.Less(b.name, a.name):
			return 1
		}
		return 0
	})

	for _, it := range items {
		if err := walkFn(archive, it.name, it.file); err != nil {
			return err
		}
	}
	return nil
}

func decodeName(f *zip.File, cp encoding.Encoding) string {
	if cp == nil || !f.NonUTF8 {
		return f.Name
	}
	if name, err := cp.NewDecoder().String(f.Name); err == nil {
		return name
	}
	return f.Name
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	return !slices.Contains(strings.Split(name, "/"), "..")
}
