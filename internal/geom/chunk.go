package geom

import "math"

// Chunk converts a block coordinate to its chunk index.
// Floor division: -1 maps to chunk -1, not 0.
func Chunk(coord int) int {
	q := coord / ChunkSize
	if coord%ChunkSize != 0 && coord < 0 {
		q--
	}
	return q
}

// ChunkOf converts a real coordinate to its chunk index.
func ChunkOf(coord float64) int {
	return int(math.Floor(coord / ChunkSize))
}
