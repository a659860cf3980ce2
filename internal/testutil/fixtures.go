package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/udisondev/cartpath/internal/geom"
)

// WriteCurveFile пишет файл кривой: header (строки комментариев) и координаты.
// Возвращает полный путь к файлу.
func WriteCurveFile(tb testing.TB, dir, name, header string, coords []geom.Point) string {
	tb.Helper()

	var b strings.Builder
	if header != "" {
		b.WriteString(header)
		b.WriteString("\n\n")
	}
	for _, c := range coords {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		tb.Fatalf("creating %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		tb.Fatalf("writing %s: %v", path, err)
	}
	return path
}
