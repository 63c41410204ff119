package faceindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVector(dim int, fill float32) []float32 {
	v := make([]float32, dim)
	for i := range v {
		v[i] = fill
	}
	return v
}

func TestEuclideanDistance(t *testing.T) {
	a := []float32{0, 0, 0}
	b := []float32{3, 4, 0}
	assert.InDelta(t, 5.0, EuclideanDistance(a, b), 1e-9)
	assert.Zero(t, EuclideanDistance(a, a))

	// Mismatched or empty inputs are infinitely far apart.
	assert.True(t, EuclideanDistance(a, []float32{1}) > 1e308)
	assert.True(t, EuclideanDistance(nil, nil) > 1e308)
}

func TestIndexNearest(t *testing.T) {
	idx := New(4)
	require.NoError(t, idx.Load([]Entry{
		{Legajo: "40895446", Embedding: []float32{0, 0, 0, 0}},
		{Legajo: "12345678", Embedding: []float32{1, 1, 1, 1}},
		{Legajo: "87654321", Embedding: []float32{5, 5, 5, 5}},
	}))
	assert.Equal(t, 3, idx.Count())

	neighbors, err := idx.Nearest([]float32{0.1, 0.1, 0.1, 0.1}, 2)
	require.NoError(t, err)
	require.Len(t, neighbors, 2)
	assert.Equal(t, "40895446", neighbors[0].Legajo)
	assert.Equal(t, "12345678", neighbors[1].Legajo)
	assert.Less(t, neighbors[0].Distance, neighbors[1].Distance)
}

func TestIndexNearestEmpty(t *testing.T) {
	idx := New(4)

	neighbors, err := idx.Nearest(testVector(4, 0.5), 2)
	require.NoError(t, err)
	assert.Empty(t, neighbors)
}

func TestIndexDimensionMismatch(t *testing.T) {
	idx := New(128)

	_, err := idx.Nearest(testVector(64, 0.5), 1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	err = idx.Add("40895446", testVector(12, 0.5))
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	err = idx.Load([]Entry{{Legajo: "40895446", Embedding: testVector(2, 0.5)}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestIndexAddThenSearch(t *testing.T) {
	idx := New(4)
	require.NoError(t, idx.Add("40895446", []float32{1, 0, 0, 0}))
	require.NoError(t, idx.Add("12345678", []float32{0, 1, 0, 0}))

	neighbors, err := idx.Nearest([]float32{0.9, 0.05, 0, 0}, 1)
	require.NoError(t, err)
	require.Len(t, neighbors, 1)
	assert.Equal(t, "40895446", neighbors[0].Legajo)
}
