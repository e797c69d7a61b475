package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Downloader hands a finished PNG to the user and returns where it went.
type Downloader interface {
	Download(ctx context.Context, filename string, blob []byte) (string, error)
}

// DirDownloader saves files into Dir, the current directory when empty.
// Absolute filenames are written where they point. Files appear atomically:
// the blob goes to a temp file in the target directory first and is renamed
// into place.
type DirDownloader struct {
	Dir string
}

func (d DirDownloader) Target(filename string) string {
	if filename == "" {
		filename = DefaultFilename
	}
	if filepath.IsAbs(filename) {
		return filepath.Clean(filename)
	}
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, filename)
}

func (d DirDownloader) Download(ctx context.Context, filename string, blob []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	target := d.Target(filename)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write png: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close png: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("chmod png: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("rename png: %w", err)
	}
	committed = true
	return target, nil
}
