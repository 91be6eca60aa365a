package report

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"schoolbuild/pkg/engine"
)

// DefaultBundleName is the file name used for the ZIP bundle when none is
// given.
const DefaultBundleName = "school-data-bundle.zip"

// WriteDir writes every output into dir, creating it when needed, and
// returns the written paths in output order.
func WriteDir(dir string, outputs []*engine.Output) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	paths := make([]string, 0, len(outputs))
	for _, o := range outputs {
		data, err := o.Bytes()
		if err != nil {
			return paths, fmt.Errorf("rendering %s: %w", o.Name, err)
		}
		path := filepath.Join(dir, o.Name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteZip writes every output as a deflated entry of a ZIP archive.
func WriteZip(w io.Writer, outputs []*engine.Output) error {
	zw := zip.NewWriter(w)
	for _, o := range outputs {
		data, err := o.Bytes()
		if err != nil {
			return fmt.Errorf("rendering %s: %w", o.Name, err)
		}
		f, err := zw.CreateHeader(&zip.FileHeader{Name: o.Name, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("adding %s to bundle: %w", o.Name, err)
		}
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("adding %s to bundle: %w", o.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing bundle: %w", err)
	}
	return nil
}

// WriteZipFile writes the ZIP bundle to path.
func WriteZipFile(path string, outputs []*engine.Output) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating bundle directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating bundle: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing bundle: %w", cerr)
		}
	}()
	return WriteZip(f, outputs)
}
