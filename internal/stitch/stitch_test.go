package stitch

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/cartpath/internal/analyze"
	"github.com/udisondev/cartpath/internal/geom"
)

// chebyshev returns the largest per-axis horizontal move between consecutive points.
func chebyshev(path []geom.Point) int {
	m := 0
	for i := 1; i < len(path); i++ {
		m = max(m, abs(path[i].X-path[i-1].X), abs(path[i].Z-path[i-1].Z))
	}
	return m
}

func TestRamp(t *testing.T) {
	from, to := geom.P(0, 0, 0), geom.P(10, 5, 0)
	r := Ramp(from, to)

	require.Len(t, r, 11)
	assert.Equal(t, from, r[0])
	assert.Equal(t, to, r[len(r)-1])
	for i := 1; i < len(r); i++ {
		assert.Equal(t, 1, r[i].X-r[i-1].X, "one block per step")
		assert.LessOrEqual(t, abs(r[i].Y-r[i-1].Y), 1)
	}

	rep := analyze.Lattice(r)
	assert.True(t, rep.OK)
	assert.LessOrEqual(t, rep.MaxGrade, 1.0)
}

func TestRampDegenerate(t *testing.T) {
	p := geom.P(4, 70, -2)
	assert.Equal(t, []geom.Point{p}, Ramp(p, p))

	up := geom.P(4, 71, -2)
	r := Ramp(p, up)
	assert.Equal(t, []geom.Point{p, up}, r)
	assert.Equal(t, analyze.NoteVerticalMove, analyze.Lattice(r).Notes)
}

func TestRampTooSteep(t *testing.T) {
	r := Ramp(geom.P(0, 0, 0), geom.P(2, 5, 0))
	assert.False(t, analyze.Lattice(r).OK)
}

func TestCorner(t *testing.T) {
	arc := Corner(geom.P(10, 5, 0), geom.P(0, 5, 0), geom.P(0, 5, -10), 3)

	require.NotEmpty(t, arc)
	assert.Equal(t, geom.P(3, 5, 0), arc[0], "approach is radius blocks before the corner")
	assert.Equal(t, geom.P(0, 5, -3), arc[len(arc)-1], "exit is radius blocks after the corner")
	assert.Equal(t, 1, chebyshev(arc))
	for _, p := range arc {
		assert.Equal(t, 5, p.Y, "corners are flat")
	}
	assert.Equal(t, arc, Dedupe(arc))
	assert.True(t, analyze.Lattice(arc).OK)
}

func TestCornerZeroRadius(t *testing.T) {
	c := geom.P(1, 2, 3)
	assert.Equal(t, []geom.Point{c}, Corner(geom.P(0, 2, 3), c, geom.P(1, 2, 9), 0))
}

func TestUTurn(t *testing.T) {
	from, to := geom.P(0, 64, 0), geom.P(0, 64, -10)
	arc := UTurn(from, to, geom.XZ{X: 1})

	require.NotEmpty(t, arc)
	assert.Equal(t, from, arc[0])
	assert.Equal(t, to, arc[len(arc)-1])
	assert.Equal(t, 1, chebyshev(arc))

	maxX := arc[0].X
	for _, p := range arc {
		assert.Equal(t, 64, p.Y)
		maxX = max(maxX, p.X)
	}
	assert.Equal(t, 5, maxX, "bulges along the travel direction by the radius")
	assert.True(t, analyze.Lattice(arc).OK)

	west := UTurn(from, to, geom.XZ{X: -1})
	for _, p := range west {
		assert.LessOrEqual(t, p.X, 0)
	}
}

func TestChain(t *testing.T) {
	a := []geom.Point{geom.P(0, 0, 0), geom.P(1, 0, 0)}
	b := []geom.Point{geom.P(1, 0, 0), geom.P(2, 0, 0)}
	c := []geom.Point{geom.P(3, 0, 0)}

	got := Chain(a, b, nil, c)
	assert.Equal(t, []geom.Point{geom.P(0, 0, 0), geom.P(1, 0, 0), geom.P(2, 0, 0), geom.P(3, 0, 0)}, got)
	assert.Nil(t, Chain())
}

func TestDedupe(t *testing.T) {
	in := []geom.Point{geom.P(0, 0, 0), geom.P(0, 0, 0), geom.P(0, 0, 1), geom.P(0, 0, 0)}
	assert.Equal(t, []geom.Point{geom.P(0, 0, 0), geom.P(0, 0, 1), geom.P(0, 0, 0)}, Dedupe(in))
}

const testLayout = `
begin: [[0, 64, 0], [-1, 64, 0]]
corners:
  - at: [-20, 70, 0]
end: [[-20, 76, -20], [-20, 76, -21]]
`

func TestBuildAndCheck(t *testing.T) {
	l, err := ParseLayout([]byte(testLayout))
	require.NoError(t, err)

	segs, err := Build(l)
	require.NoError(t, err)

	names := make([]string, len(segs))
	for i, s := range segs {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"begin", "ramp 1", "corner 1", "ramp 2", "end"}, names)

	corner := segs[2].Points
	assert.Equal(t, geom.P(-17, 70, 0), corner[0])
	assert.Equal(t, geom.P(-20, 70, -3), corner[len(corner)-1])

	path := Path(segs)
	assert.Equal(t, geom.P(0, 64, 0), path[0])
	assert.Equal(t, geom.P(-20, 76, -21), path[len(path)-1])
	assert.Len(t, path, 42)

	rep, err := Check(segs)
	require.NoError(t, err)
	assert.True(t, rep.OK)
	assert.InDelta(t, 1.0, rep.MaxGrade, 1e-9)
}

func TestCheckReportsFailingSegment(t *testing.T) {
	l, err := ParseLayout([]byte(`
begin: [[0, 64, 0]]
corners:
  - at: [-10, 100, 0]
    radius: 2
end: [[-10, 100, -10]]
`))
	require.NoError(t, err)

	segs, err := Build(l)
	require.NoError(t, err)

	_, err = Check(segs)
	require.ErrorIs(t, err, ErrGradeExceeded)
	assert.Contains(t, err.Error(), "ramp 1")
}

func TestCheckJointBetweenSegments(t *testing.T) {
	segs := []Segment{
		{Name: "a", Points: []geom.Point{geom.P(0, 0, 0), geom.P(1, 0, 0)}},
		{Name: "b", Points: []geom.Point{geom.P(2, 3, 0), geom.P(3, 3, 0)}},
	}
	_, err := Check(segs)
	require.ErrorIs(t, err, ErrGradeExceeded)
	assert.Contains(t, err.Error(), ": b: ")
}

func TestLayoutRadiusFallback(t *testing.T) {
	l := Layout{
		Begin:   [][3]int{{20, 0, 0}},
		Corners: []CornerSpec{{At: [3]int{0, 0, 0}}},
		End:     [][3]int{{0, 0, -20}},
		Radius:  5,
	}
	segs, err := Build(l)
	require.NoError(t, err)
	assert.Equal(t, geom.P(5, 0, 0), segs[2].Points[0])

	l.Radius = 0
	segs, err = Build(l)
	require.NoError(t, err)
	assert.Equal(t, geom.P(DefaultRadius, 0, 0), segs[2].Points[0])
}

func TestParseLayoutErrors(t *testing.T) {
	_, err := ParseLayout([]byte("begin: [[0, 0, 0]]\n"))
	assert.ErrorIs(t, err, ErrEmptyLayout)

	_, err = ParseLayout([]byte("begin: {"))
	assert.Error(t, err)

	_, err = Build(Layout{})
	assert.ErrorIs(t, err, ErrEmptyLayout)
}

func TestLoadLayoutMissingFile(t *testing.T) {
	_, err := LoadLayout("does-not-exist.yaml")
	assert.Error(t, err)
}

const serpentineLayout = `
begin: [[0, 64, 0], [1, 64, 0]]
corners:
  - kind: uturn
    at: [20, 70, 0]
    to: [20, 70, -10]
  - kind: uturn
    at: [0, 76, -10]
    to: [0, 76, -20]
end: [[20, 82, -20], [21, 82, -20]]
`

func TestBuildUTurns(t *testing.T) {
	l, err := ParseLayout([]byte(serpentineLayout))
	require.NoError(t, err)

	segs, err := Build(l)
	require.NoError(t, err)

	names := make([]string, len(segs))
	for i, s := range segs {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"begin", "ramp 1", "uturn 1", "ramp 2", "uturn 2", "ramp 3", "end"}, names)

	tests := []struct {
		seg        Segment
		from, to   geom.Point
		minX, maxX int
	}{
		{segs[2], geom.P(20, 70, 0), geom.P(20, 70, -10), 20, 25}, // heading east, bulges east
		{segs[4], geom.P(0, 76, -10), geom.P(0, 76, -20), -5, 0},  // heading west, bulges west
	}
	for _, tt := range tests {
		pts := tt.seg.Points
		assert.Equal(t, tt.from, pts[0], tt.seg.Name)
		assert.Equal(t, tt.to, pts[len(pts)-1], tt.seg.Name)
		lo, hi := pts[0].X, pts[0].X
		for _, p := range pts {
			lo, hi = min(lo, p.X), max(hi, p.X)
		}
		assert.Equal(t, tt.minX, lo, tt.seg.Name)
		assert.Equal(t, tt.maxX, hi, tt.seg.Name)
	}

	rep, err := Check(segs)
	require.NoError(t, err)
	assert.True(t, rep.OK)

	path := Path(segs)
	assert.Len(t, path, 102)
	assert.Equal(t, geom.P(21, 82, -20), path[len(path)-1])
}

func TestParseLayoutBadTurn(t *testing.T) {
	_, err := ParseLayout([]byte(`
begin: [[0, 0, 0]]
corners:
  - kind: uturn
    at: [10, 0, 0]
end: [[0, 0, -10]]
`))
	assert.ErrorIs(t, err, ErrBadTurn)

	_, err = Build(Layout{
		Begin:   [][3]int{{0, 0, 0}},
		Corners: []CornerSpec{{Kind: "hairpin", At: [3]int{10, 0, 0}}},
		End:     [][3]int{{0, 0, -10}},
	})
	assert.ErrorIs(t, err, ErrBadTurn)
}

func TestShippedLayouts(t *testing.T) {
	for _, name := range []string{"loop.yaml", "serpentine.yaml"} {
		t.Run(name, func(t *testing.T) {
			l, err := LoadLayout(filepath.Join("..", "..", "layouts", name))
			require.NoError(t, err)

			segs, err := Build(l)
			require.NoError(t, err)

			rep, err := Check(segs)
			require.NoError(t, err)
			assert.True(t, rep.OK)
			assert.LessOrEqual(t, rep.MaxGrade, 1.0)
		})
	}
}
