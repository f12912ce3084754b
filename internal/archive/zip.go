// Package archive packages a working tree into an in-memory zip stream.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"memekit_server/internal/types"
)

// Pack walks the tree and returns a zip of its files. Entry names are
// relative to the tree root with forward slashes; the root itself is not
// an entry. The whole archive is buffered in memory, which is fine for the
// expected artifact sizes (tens of files, media in the low tens of MB).
func Pack(tree *types.WorkingTree) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	err := filepath.WalkDir(tree.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(tree.Root, path)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", path, err)
		}

		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return fmt.Errorf("create archive entry %s: %w", rel, err)
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		if _, err := io.Copy(w, f); err != nil {
			return fmt.Errorf("copy %s into archive: %w", rel, err)
		}
		return nil
	})
	if err != nil {
		zw.Close()
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
