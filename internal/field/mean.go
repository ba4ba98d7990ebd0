package field

import (
	"fmt"

	"github.com/deepkick/climlab/internal/ndarray"
)

// LatitudeWeights returns cos(latitude) for every point of the latitude axis
// of f's domain, with latitudes given in degrees.
func LatitudeWeights(f *Field) (*ndarray.Array, error) {
	if f == nil || f.domain == nil {
		return nil, ErrNoLatitudeAxis
	}
	lat, ok := f.domain.Points(LatitudeAxis)
	if !ok {
		return nil, ErrNoLatitudeAxis
	}
	return ndarray.FromSlice(lat).Deg2Rad().Cos(), nil
}

// GlobalMean returns the cos-latitude weighted mean of f:
//
//	sum(squeeze(f) * cos(lat)) / sum(cos(lat))
//
// Singleton axes of f are removed first and the remaining values are
// broadcast against the weight vector from the trailing axis. Weights are
// normalised only by their sum, so this is a weighted arithmetic mean in
// which the poles contribute nothing and the equator dominates.
func GlobalMean(f *Field) (float64, error) {
	weights, err := LatitudeWeights(f)
	if err != nil {
		return 0, err
	}

	weighted, err := f.values.Squeeze().Mul(weights)
	if err != nil {
		return 0, fmt.Errorf("global mean: %w", err)
	}
	return weighted.Sum() / weights.Sum(), nil
}
