package model

import (
	"sort"
)

// Node is one element of a flattened regression tree. Leaves have Left and
// Right set to -1; inner nodes send rows with Feature <= Threshold left.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

func (n Node) leaf() bool {
	return n.Left < 0 && n.Right < 0
}

type Tree struct {
	Nodes []Node `json:"nodes"`
}

func (t *Tree) predict(row []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.leaf() {
			return n.Value
		}
		if row[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

type split struct {
	feature   int
	threshold float64
	gain      float64
	left      []int
	right     []int
}

type openLeaf struct {
	node int
	best *split
}

const minGain = 1e-12

// growTree fits a least-squares regression tree on targets, expanding the
// leaf with the largest gain first until maxLeaves is reached.
func growTree(x [][]float64, targets []float64, maxLeaves, minLeaf int) *Tree {
	rows := make([]int, len(targets))
	for i := range rows {
		rows[i] = i
	}

	t := &Tree{Nodes: []Node{{Left: -1, Right: -1, Value: mean(targets, rows)}}}
	open := []*openLeaf{{node: 0, best: bestSplit(x, targets, rows, minLeaf)}}
	leaves := 1

	for leaves < maxLeaves {
		pick := -1
		for i, l := range open {
			if l.best == nil {
				continue
			}
			if pick < 0 || l.best.gain > open[pick].best.gain {
				pick = i
			}
		}
		if pick < 0 {
			break
		}

		l := open[pick]
		s := l.best

		left := len(t.Nodes)
		right := left + 1
		t.Nodes = append(t.Nodes,
			Node{Left: -1, Right: -1, Value: mean(targets, s.left)},
			Node{Left: -1, Right: -1, Value: mean(targets, s.right)},
		)
		t.Nodes[l.node] = Node{Feature: s.feature, Threshold: s.threshold, Left: left, Right: right}

		open = append(open[:pick], open[pick+1:]...)
		open = append(open,
			&openLeaf{node: left, best: bestSplit(x, targets, s.left, minLeaf)},
			&openLeaf{node: right, best: bestSplit(x, targets, s.right, minLeaf)},
		)
		leaves++
	}

	return t
}

// bestSplit returns the variance-reducing split with the highest gain that
// leaves at least minLeaf rows on each side, or nil.
func bestSplit(x [][]float64, targets []float64, rows []int, minLeaf int) *split {
	n := len(rows)
	if n < 2*minLeaf || n < 2 {
		return nil
	}

	total := 0.0
	for _, r := range rows {
		total += targets[r]
	}
	base := total * total / float64(n)

	var best *split
	sorted := make([]int, n)
	for f := range x[rows[0]] {
		copy(sorted, rows)
		sort.SliceStable(sorted, func(a, b int) bool {
			return x[sorted[a]][f] < x[sorted[b]][f]
		})

		sumLeft := 0.0
		for k := 1; k < n; k++ {
			sumLeft += targets[sorted[k-1]]
			if k < minLeaf || n-k < minLeaf {
				continue
			}

			lo, hi := x[sorted[k-1]][f], x[sorted[k]][f]
			if lo == hi {
				continue
			}

			sumRight := total - sumLeft
			gain := sumLeft*sumLeft/float64(k) + sumRight*sumRight/float64(n-k) - base
			if gain <= minGain || (best != nil && gain <= best.gain) {
				continue
			}

			threshold := lo + (hi-lo)/2
			if threshold >= hi {
				threshold = lo
			}
			best = &split{feature: f, threshold: threshold, gain: gain}
		}
	}

	if best == nil {
		return nil
	}

	for _, r := range rows {
		if x[r][best.feature] <= best.threshold {
			best.left = append(best.left, r)
		} else {
			best.right = append(best.right, r)
		}
	}

	return best
}

func mean(values []float64, rows []int) float64 {
	if len(rows) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range rows {
		sum += values[r]
	}
	return sum / float64(len(rows))
}
