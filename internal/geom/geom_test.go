package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name  string
		coord int
		want  int
	}{
		{"origin", 0, 0},
		{"inside first", 15, 0},
		{"second", 16, 1},
		{"boundary 479", 479, 29},
		{"boundary 480", 480, 30},
		{"minus one", -1, -1},
		{"minus sixteen", -16, -1},
		{"minus seventeen", -17, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Chunk(tt.coord))
			assert.Equal(t, tt.want, ChunkOf(float64(tt.coord)))
		})
	}
}

func TestChunkOfFraction(t *testing.T) {
	assert.Equal(t, -3, ChunkOf(-40))
	assert.Equal(t, -1, ChunkOf(-0.5))
	assert.Equal(t, 0, ChunkOf(15.99))
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, P(1, -1, 3), V3(0.5, -0.5, 2.5).Round())
	assert.Equal(t, P(0, 0, -2), V3(0.49, -0.49, -2.4).Round())
}

func TestPointString(t *testing.T) {
	assert.Equal(t, "[-199, 98, 410]", P(-199, 98, 410).String())
}

func TestHorizontal(t *testing.T) {
	assert.InDelta(t, 5.0, V3(3, 100, 4).Horizontal(), 1e-12)
}

func TestVecArithmetic(t *testing.T) {
	a, b := V3(1, 2, 3), V3(-4, 0.5, 2)
	assert.Equal(t, V3(-3, 2.5, 5), a.Add(b))
	assert.Equal(t, V3(2, 4, 6), a.Scale(2))
	assert.Equal(t, a, a.Add(b).Sub(b))
}
