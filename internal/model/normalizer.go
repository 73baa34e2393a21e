package model

// MinMax rescales each column to [0, 1] using the ranges seen during training.
// Constant columns map to 0.
type MinMax struct {
	Min []float64 `json:"min"`
	Max []float64 `json:"max"`
}

func fitMinMax(rows [][]float64, width int) MinMax {
	n := MinMax{
		Min: make([]float64, width),
		Max: make([]float64, width),
	}

	for i, row := range rows {
		for j, v := range row {
			if i == 0 || v < n.Min[j] {
				n.Min[j] = v
			}
			if i == 0 || v > n.Max[j] {
				n.Max[j] = v
			}
		}
	}

	return n
}

func (n MinMax) apply(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		span := n.Max[j] - n.Min[j]
		if span <= 0 {
			continue
		}
		out[j] = (v - n.Min[j]) / span
	}

	return out
}
