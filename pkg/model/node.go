package model

// Node is one row of the flattened outline: a pre-order, depth-tagged
// rendering of the folder tree. Folders and leaves share the type; only
// folders may be collapsed. Hidden is derived state, true iff at least one
// strict ancestor folder is collapsed, and is maintained exclusively by the
// visibility controller.
type Node struct {
	Depth     int    // nesting level, 0 at top level
	IsFolder  bool   // only folders may collapse
	Collapsed bool   // explicit user state; meaningful only when IsFolder
	Hidden    bool   // derived: a strict ancestor folder is collapsed

	Title string // display text for the row
	Slug  string // stable identifier (folder path segment or item slug)
	Item  *Item  // underlying note for leaves; nil for folders
}

// Sequence is a pre-order flattening of an outline tree.
//
// Subtree-block invariant: for the node at position i with depth d, its
// descendants occupy the maximal contiguous run of subsequent positions whose
// depth is > d; the run ends at the first later position with depth <= d, or
// at the end of the sequence.
type Sequence []Node
