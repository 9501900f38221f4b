// Package archive packages a run's output directory into a single zip.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Name returns the archive file name for a run id.
func Name(runID string) string {
	return runID + ".zip"
}

// Write streams every regular file under dir into a deflated zip on w.
// Entry names are slash-separated paths relative to dir, in lexical order.
// Paths listed in skip (absolute or relative to the working directory) are left out.
func Write(w io.Writer, dir string, skip ...string) ([]string, error) {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		if abs, err := filepath.Abs(s); err == nil {
			skipped[abs] = true
		}
	}

	zw := zip.NewWriter(w)
	var entries []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if abs, err := filepath.Abs(path); err == nil && skipped[abs] {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if err := addFile(zw, path, name, d); err != nil {
			return fmt.Errorf("add %s: %w", name, err)
		}
		entries = append(entries, name)
		return nil
	})
	if err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize zip: %w", err)
	}
	return entries, nil
}

func addFile(zw *zip.Writer, path, name string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = name
	hdr.Method = zip.Deflate

	dst, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(dst, f)
	return err
}

// Create writes the zip of dir to dest and returns the entry names.
// dest may live inside dir; it is never added to itself.
func Create(dir, dest string) ([]string, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}
	entries, err := Write(f, dir, dest)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		return nil, err
	}
	return entries, nil
}
