package embedding

import (
	"math"
	"sort"
)

// Cosine computes cosine similarity between two vectors. Mismatched or
// empty inputs score zero rather than erroring, matching how the exercises
// treat degenerate vectors.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Neighbor is one nearest-neighbor hit: the index into the searched
// vectors and its cosine similarity to the query.
type Neighbor struct {
	Index int
	Score float64
}

// Nearest returns the k vectors most similar to query, best first. Ties
// keep the lower index first so results are deterministic.
func Nearest(query []float32, vectors [][]float32, k int) []Neighbor {
	neighbors := make([]Neighbor, len(vectors))
	for i, v := range vectors {
		neighbors[i] = Neighbor{Index: i, Score: Cosine(query, v)}
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Score > neighbors[j].Score
	})
	if k > len(neighbors) {
		k = len(neighbors)
	}
	if k < 0 {
		k = 0
	}
	return neighbors[:k]
}

// Stats are the sanity-check numbers for one vector.
type Stats struct {
	Dims int
	Min  float64
	Max  float64
	Mean float64
}

// Summarize computes Stats for a vector.
func Summarize(vec []float32) Stats {
	if len(vec) == 0 {
		return Stats{}
	}

	min := float64(vec[0])
	max := float64(vec[0])
	sum := 0.0
	for _, v := range vec {
		f := float64(v)
		if f < min {
			min = f
		}
		if f > max {
			max = f
		}
		sum += f
	}

	return Stats{
		Dims: len(vec),
		Min:  min,
		Max:  max,
		Mean: sum / float64(len(vec)),
	}
}
