package analysis

import (
	"math"
	"testing"

	"github.com/vanderheijden86/listfold/pkg/model"
)

func node(depth int, folder, collapsed, hidden bool) model.Node {
	return model.Node{Depth: depth, IsFolder: folder, Collapsed: collapsed, Hidden: hidden}
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil)
	if s.Nodes != 0 {
		t.Errorf("Nodes = %d", s.Nodes)
	}
	if s.VisibleRatio() != 1 {
		t.Errorf("VisibleRatio = %v, want 1 for empty outline", s.VisibleRatio())
	}
}

func TestComputeCountsAndDepths(t *testing.T) {
	seq := model.Sequence{
		node(0, true, false, false),  // folder, 2 children
		node(1, true, true, false),   // collapsed folder, 1 child
		node(2, false, false, true),  // hidden leaf
		node(1, false, false, false), // leaf
		node(0, false, false, false), // top-level leaf
	}
	s := Compute(seq)

	if s.Nodes != 5 || s.Folders != 2 || s.Items != 3 {
		t.Errorf("counts = %d/%d/%d", s.Nodes, s.Folders, s.Items)
	}
	if s.Collapsed != 1 {
		t.Errorf("Collapsed = %d", s.Collapsed)
	}
	if s.Visible != 4 {
		t.Errorf("Visible = %d", s.Visible)
	}
	if s.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d", s.MaxDepth)
	}
	if want := (0.0 + 1 + 2 + 1 + 0) / 5; math.Abs(s.MeanDepth-want) > 1e-9 {
		t.Errorf("MeanDepth = %v, want %v", s.MeanDepth, want)
	}
	// Folder at 0 has children at depth 1 (two of them); folder at 1 has one.
	if want := 1.5; math.Abs(s.MeanFan-want) > 1e-9 {
		t.Errorf("MeanFan = %v, want %v", s.MeanFan, want)
	}
	if want := 0.8; math.Abs(s.VisibleRatio()-want) > 1e-9 {
		t.Errorf("VisibleRatio = %v, want %v", s.VisibleRatio(), want)
	}
}

func TestComputeSingleRow(t *testing.T) {
	s := Compute(model.Sequence{node(0, false, false, false)})
	if s.DepthStd != 0 {
		t.Errorf("DepthStd = %v, want 0 for single row", s.DepthStd)
	}
	if s.MeanFan != 0 {
		t.Errorf("MeanFan = %v", s.MeanFan)
	}
}
