package faceindex

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/coder/hnsw"
)

// DefaultDim is the embedding length produced by the face extraction step.
const DefaultDim = 128

const maxNeighbors = 16

// ErrDimensionMismatch marks a vector whose length differs from the
// system-wide embedding dimensionality.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Entry is one enrolled reference embedding.
type Entry struct {
	Legajo    string
	Embedding []float32
}

// Neighbor is a candidate returned by a nearest-neighbor lookup, with the
// exact Euclidean distance to the probe.
type Neighbor struct {
	Legajo   string
	Distance float64
}

// Index holds one reference embedding per legajo and supports
// nearest-neighbor lookup. It is the in-memory snapshot of the enrolled
// population: loaded at startup from the employee repository and refreshed
// on every enrollment.
type Index struct {
	mu       sync.RWMutex
	dim      int
	graph    *hnsw.Graph[string]
	byLegajo map[string][]float32
}

// New creates an empty index for vectors of the given dimensionality.
func New(dim int) *Index {
	if dim <= 0 {
		dim = DefaultDim
	}
	return &Index{
		dim:      dim,
		byLegajo: make(map[string][]float32),
	}
}

// Dim returns the fixed embedding dimensionality.
func (x *Index) Dim() int {
	return x.dim
}

// Count returns the number of enrolled embeddings.
func (x *Index) Count() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.byLegajo)
}

// Load rebuilds the index from scratch.
func (x *Index) Load(entries []Entry) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	g := newGraph()
	byLegajo := make(map[string][]float32, len(entries))

	for _, e := range entries {
		if len(e.Embedding) != x.dim {
			return fmt.Errorf("%w: legajo %s has %d values, want %d",
				ErrDimensionMismatch, e.Legajo, len(e.Embedding), x.dim)
		}
		g.Add(hnsw.MakeNode(e.Legajo, e.Embedding))
		byLegajo[e.Legajo] = e.Embedding
	}

	x.graph = g
	x.byLegajo = byLegajo
	return nil
}

// Add inserts a single reference embedding.
func (x *Index) Add(legajo string, embedding []float32) error {
	if len(embedding) != x.dim {
		return fmt.Errorf("%w: got %d values, want %d", ErrDimensionMismatch, len(embedding), x.dim)
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if x.graph == nil {
		x.graph = newGraph()
	}
	x.graph.Add(hnsw.MakeNode(legajo, embedding))
	x.byLegajo[legajo] = embedding
	return nil
}

// Nearest returns up to k enrolled candidates closest to the probe, sorted
// by ascending exact Euclidean distance. An empty index yields an empty
// slice.
func (x *Index) Nearest(probe []float32, k int) ([]Neighbor, error) {
	if len(probe) != x.dim {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrDimensionMismatch, len(probe), x.dim)
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	if x.graph == nil || len(x.byLegajo) == 0 {
		return nil, nil
	}

	nodes := x.graph.Search(probe, k)

	// Re-score with the exact distance; the graph search is approximate.
	neighbors := make([]Neighbor, 0, len(nodes))
	for _, n := range nodes {
		neighbors = append(neighbors, Neighbor{
			Legajo:   n.Key,
			Distance: EuclideanDistance(probe, n.Value),
		})
	}
	sort.Slice(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})
	return neighbors, nil
}

func newGraph() *hnsw.Graph[string] {
	g := hnsw.NewGraph[string]()
	g.M = maxNeighbors
	g.Ml = 1.0 / float64(maxNeighbors)
	g.Distance = hnsw.EuclideanDistance
	return g
}

// EuclideanDistance computes the L2 distance between two vectors of equal
// length.
func EuclideanDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.Inf(1)
	}

	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
