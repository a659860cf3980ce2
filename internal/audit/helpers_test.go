package audit

import (
	"github.com/udisondev/cartpath/internal/corpus"
	"github.com/udisondev/cartpath/internal/geom"
)

func fileOf(coords []geom.Point) corpus.File {
	return corpus.File{Name: "mem.txt", Path: "mem.txt", Coords: coords}
}
