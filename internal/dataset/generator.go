package dataset

import (
	"math/rand"

	"github.com/drakos74/perceptron/internal/model"
)

const (
	// ClusterSize is the number of examples generated for each of the two classes.
	ClusterSize = 50
	// NoiseSize is the number of mislabeled examples added to the clusters.
	NoiseSize = 10
	// Size is the total number of generated examples.
	Size = 2*ClusterSize + NoiseSize
)

// Generate creates a shuffled dataset of two clusters in the unit square plus label noise.
// Class 0 lies in [0,0.5)x[0,0.5), class 1 in [0.5,1)x[0.5,1).
// The noise examples are spread over the whole square and carry the opposite label
// of the one their region suggests.
func Generate(rng *rand.Rand) model.Dataset {
	ds := make(model.Dataset, 0, Size)
	ds = append(ds, cluster(rng, 0, 0.5, ClusterSize, 0)...)
	ds = append(ds, cluster(rng, 0.5, 0.5, ClusterSize, 1)...)
	ds = append(ds, noise(rng, NoiseSize)...)
	rng.Shuffle(len(ds), func(i, j int) {
		ds[i], ds[j] = ds[j], ds[i]
	})
	return ds
}

// cluster generates n examples uniformly within [offset, offset+width) on both axes.
func cluster(rng *rand.Rand, offset, width float64, n int, label int) []model.Example {
	ee := make([]model.Example, n)
	for i := 0; i < n; i++ {
		x1 := offset + rng.Float64()*width
		x2 := offset + rng.Float64()*width
		ee[i] = model.NewExample(x1, x2, label)
	}
	return ee
}

func noise(rng *rand.Rand, n int) []model.Example {
	ee := make([]model.Example, n)
	for i := 0; i < n; i++ {
		x1 := rng.Float64()
		x2 := rng.Float64()
		ee[i] = model.NewExample(x1, x2, invertedLabel(x1, x2))
	}
	return ee
}

// invertedLabel returns the class opposite to the region of the point.
func invertedLabel(x1, x2 float64) int {
	if x1+x2 > 1 {
		return 0
	}
	return 1
}
