package embedding

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ProjectPCA reduces high-dimensional vectors to dims components via
// principal component analysis, for scatter-plotting semantic clusters.
func ProjectPCA(vectors [][]float32, dims int) ([][]float64, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no vectors to project")
	}
	d := len(vectors[0])
	if dims < 1 || dims > d {
		return nil, fmt.Errorf("invalid target dimensions %d for %d-dimensional vectors", dims, d)
	}
	if len(vectors) <= dims {
		return nil, fmt.Errorf("need more than %d vectors to project to %d dimensions", dims, dims)
	}

	data := mat.NewDense(len(vectors), d, nil)
	for i, vec := range vectors {
		if len(vec) != d {
			return nil, fmt.Errorf("vector %d has %d dimensions, want %d", i, len(vec), d)
		}
		for j, v := range vec {
			data.Set(i, j, float64(v))
		}
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(data, nil); !ok {
		return nil, fmt.Errorf("principal component analysis failed")
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs)

	var projected mat.Dense
	projected.Mul(data, vecs.Slice(0, d, 0, dims))

	out := make([][]float64, len(vectors))
	for i := range out {
		row := make([]float64, dims)
		for j := 0; j < dims; j++ {
			row[j] = projected.At(i, j)
		}
		out[i] = row
	}
	return out, nil
}
