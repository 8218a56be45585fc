// Package analysis computes shape statistics for a flattened outline. The
// numbers feed the UI footer and the snapshot export summary.
package analysis

import (
	"gonum.org/v1/gonum/stat"

	"github.com/vanderheijden86/listfold/pkg/model"
)

// OutlineStats summarizes the shape of an outline sequence.
type OutlineStats struct {
	Nodes     int     // total rows
	Folders   int     // folder rows
	Items     int     // leaf rows
	Collapsed int     // collapsed folders
	Visible   int     // rows with Hidden == false
	MaxDepth  int     // deepest row
	MeanDepth float64 // mean depth over all rows
	DepthStd  float64 // standard deviation of depth
	MeanFan   float64 // mean direct children per folder
}

// VisibleRatio returns the visible share of rows, 1 for an empty outline.
func (s OutlineStats) VisibleRatio() float64 {
	if s.Nodes == 0 {
		return 1
	}
	return float64(s.Visible) / float64(s.Nodes)
}

// Compute derives OutlineStats from a sequence in one pass plus the gonum
// moment calculations. Fan-out is recovered from the depth tags: a row at
// depth d+1 is a direct child of the nearest preceding row at depth d.
func Compute(seq model.Sequence) OutlineStats {
	s := OutlineStats{Nodes: len(seq)}
	if len(seq) == 0 {
		return s
	}

	depths := make([]float64, len(seq))
	children := make(map[int]int) // folder position -> direct child count

	// openFolder[d] is the position of the most recent folder at depth d.
	openFolder := make(map[int]int)

	for i, n := range seq {
		depths[i] = float64(n.Depth)
		if n.Depth > s.MaxDepth {
			s.MaxDepth = n.Depth
		}
		if !n.Hidden {
			s.Visible++
		}
		if n.Depth > 0 {
			if parent, ok := openFolder[n.Depth-1]; ok {
				children[parent]++
			}
		}
		if n.IsFolder {
			s.Folders++
			openFolder[n.Depth] = i
			if n.Collapsed {
				s.Collapsed++
			}
		} else {
			s.Items++
		}
	}

	s.MeanDepth = stat.Mean(depths, nil)
	if len(depths) > 1 {
		s.DepthStd = stat.StdDev(depths, nil)
	}

	if s.Folders > 0 {
		fan := make([]float64, 0, s.Folders)
		for i, n := range seq {
			if n.IsFolder {
				fan = append(fan, float64(children[i]))
			}
		}
		s.MeanFan = stat.Mean(fan, nil)
	}
	return s
}
