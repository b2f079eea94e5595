package dataset

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `# x1, x2, y
1, 10, 0.5

3 20 1.5
  # indented comment
2,30,	2.5
`

func TestParse(t *testing.T) {
	set, err := Parse(strings.NewReader(sample), Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, set.Len())
	assert.Equal(t, 2, set.Features)
	assert.Equal(t, 1, set.Outputs)
	assert.Equal(t, []float64{3, 20}, set.Examples[1].Input)
	assert.Equal(t, []float64{2.5}, set.Examples[2].Target)
}

func TestParse_OneHot(t *testing.T) {
	set, err := Parse(strings.NewReader("0.1 0.2 2\n0.3 0.4 0\n"), Options{Classes: 3})
	require.NoError(t, err)

	assert.Equal(t, 3, set.Outputs)
	assert.Equal(t, []float64{0, 0, 1}, set.Examples[0].Target)
	assert.Equal(t, []float64{1, 0, 0}, set.Examples[1].Target)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		opts    Options
		wantErr error
	}{
		{"empty", "", Options{}, ErrEmpty},
		{"only comments", "# nothing\n\n", Options{}, ErrEmpty},
		{"ragged", "1 2 3\n1 2\n", Options{}, ErrRaggedRow},
		{"single column", "4\n", Options{}, ErrTooFewCols},
		{"label too large", "1 2 3\n", Options{Classes: 3}, ErrLabel},
		{"fractional label", "1 2 0.5\n", Options{Classes: 3}, ErrLabel},
		{"negative label", "1 2 -1\n", Options{Classes: 3}, ErrLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), tt.opts)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := Parse(strings.NewReader("1 abc 3\n"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	set, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"), Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMinMax(t *testing.T) {
	set, err := Parse(strings.NewReader("1 5 10 0\n3 5 30 0\n2 5 20 0\n"), Options{})
	require.NoError(t, err)

	m := Normalize(set)
	assert.Equal(t, []float64{1, 5, 10}, m.Min)
	assert.Equal(t, []float64{3, 5, 30}, m.Max)

	assert.Equal(t, []float64{0, 0, 0}, set.Examples[0].Input)
	assert.Equal(t, []float64{1, 0, 1}, set.Examples[1].Input)
	assert.Equal(t, []float64{0.5, 0, 0.5}, set.Examples[2].Input)

	// Unseen values are not clipped.
	assert.Equal(t, []float64{2, 0, -0.25}, m.Transform([]float64{5, 9, 5}))
}

func TestShuffleAndSplit(t *testing.T) {
	set := &Set{Features: 1, Outputs: 1}
	for i := 0; i < 10; i++ {
		set.Examples = append(set.Examples, Example{Input: []float64{float64(i)}, Target: []float64{0}})
	}

	set.Shuffle(rand.New(rand.NewPCG(1, 2)))
	seen := map[float64]bool{}
	for _, ex := range set.Examples {
		seen[ex.Input[0]] = true
	}
	assert.Len(t, seen, 10)

	head, tail := set.Split(0.8)
	assert.Equal(t, 8, head.Len())
	assert.Equal(t, 2, tail.Len())
	assert.Equal(t, set.Examples[8], tail.Examples[0])

	head, tail = set.Split(1.5)
	assert.Equal(t, 10, head.Len())
	assert.Equal(t, 0, tail.Len())
}
