package audit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Quarantine moves files into dir, creating it when needed. A name already taken in dir gets
// a timestamp suffix, so earlier quarantined files are never replaced.
// A path listed more than once is moved once. It returns the destination paths in input
// order.
func Quarantine(paths []string, dir string, now time.Time) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating quarantine %s: %w", dir, err)
	}

	moved := make([]string, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for _, src := range paths {
		if seen[src] {
			continue
		}
		seen[src] = true
		dest, err := freeName(dir, filepath.Base(src), now)
		if err != nil {
			return moved, err
		}
		if err := os.Rename(src, dest); err != nil {
			return moved, fmt.Errorf("moving %s to quarantine: %w", src, err)
		}
		moved = append(moved, dest)
	}
	return moved, nil
}

func freeName(dir, name string, now time.Time) (string, error) {
	dest := filepath.Join(dir, name)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	stamp := now.Format("20060102150405")

	for i := 0; ; i++ {
		_, err := os.Stat(dest)
		if errors.Is(err, fs.ErrNotExist) {
			return dest, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking %s: %w", dest, err)
		}
		if i == 0 {
			dest = filepath.Join(dir, stem+"_"+stamp+ext)
		} else {
			dest = filepath.Join(dir, fmt.Sprintf("%s_%s_%d%s", stem, stamp, i, ext))
		}
	}
}
