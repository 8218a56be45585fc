// Package visibility implements the collapse/expand state machine for a
// flattened outline. The controller owns a pre-order, depth-tagged sequence
// of nodes and is the sole mutator of their Collapsed and Hidden flags.
//
// Visibility is a transitive property of the ancestor chain: a node is hidden
// iff at least one strict ancestor folder is collapsed. Because the tree is
// stored as a flat pre-order sequence, the ancestor relationship is recovered
// from the depth tags alone: a node's descendants are exactly the maximal
// contiguous run of deeper nodes that follows it.
package visibility

import (
	"errors"
	"fmt"

	"github.com/vanderheijden86/listfold/pkg/model"
)

// Sentinel errors returned by Toggle and Validate. All are precondition
// rejections: when one is returned, no flag has been mutated.
var (
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrNotAFolder        = errors.New("node is not a folder")
	ErrMalformedSequence = errors.New("malformed sequence")
)

// Controller owns a flattened outline sequence and derives row visibility
// from folder collapse state. It holds no other state: no history, no undo,
// no persistence. Not safe for concurrent use; the single-writer caller
// (the UI update loop) serializes all access.
type Controller struct {
	seq model.Sequence
}

// New wraps a flattened sequence. The sequence must already satisfy the
// derived invariant (pre-collapsed folders are allowed as long as their
// descendants arrive hidden); Validate can be used to check untrusted input.
func New(seq model.Sequence) *Controller {
	return &Controller{seq: seq}
}

// Sequence exposes the owned sequence for read-only consumers (renderer,
// adapter). Callers must not mutate flags through it.
func (c *Controller) Sequence() model.Sequence {
	return c.seq
}

// Len returns the number of nodes in the sequence.
func (c *Controller) Len() int {
	return len(c.seq)
}

// Block returns the half-open bounds [index+1, end) of the descendant block
// of the node at index: the maximal contiguous run of subsequent nodes deeper
// than it. The block is empty (start == end) for nodes without descendants.
// The block is scanned for structural violations before being returned, so a
// successful Block call guarantees the run is safe to mutate.
func (c *Controller) Block(index int) (start, end int, err error) {
	if index < 0 || index >= len(c.seq) {
		return 0, 0, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, index, len(c.seq))
	}
	d := c.seq[index].Depth
	if d < 0 {
		return 0, 0, fmt.Errorf("%w: negative depth %d at %d", ErrMalformedSequence, d, index)
	}

	start = index + 1
	end = start
	prev := d
	for end < len(c.seq) {
		nd := c.seq[end].Depth
		if nd <= d {
			break // first node at or above the folder's depth ends the block
		}
		if nd < 0 {
			return 0, 0, fmt.Errorf("%w: negative depth %d at %d", ErrMalformedSequence, nd, end)
		}
		if nd > prev+1 {
			return 0, 0, fmt.Errorf("%w: depth jump %d -> %d at %d", ErrMalformedSequence, prev, nd, end)
		}
		prev = nd
		end++
	}
	return start, end, nil
}

// Toggle flips the collapsed state of the folder at index and recomputes the
// Hidden flag for exactly its descendant block. No node outside the block is
// touched. On error no flag is mutated.
//
// Collapsing hides every descendant unconditionally. Expanding reveals
// descendants but never reaches past a nested folder that is itself still
// collapsed: its subtree stays hidden (nested collapse awareness). Expanding
// a folder that is itself hidden under a collapsed ancestor flips only its
// Collapsed flag; its block stays hidden until the ancestor expands.
func (c *Controller) Toggle(index int) error {
	if index < 0 || index >= len(c.seq) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, index, len(c.seq))
	}
	if !c.seq[index].IsFolder {
		return fmt.Errorf("%w: index %d (%s)", ErrNotAFolder, index, c.seq[index].Slug)
	}
	start, end, err := c.Block(index)
	if err != nil {
		return err
	}

	folder := &c.seq[index]
	folder.Collapsed = !folder.Collapsed
	switch {
	case folder.Collapsed:
		c.hideBlock(start, end)
	case folder.Hidden:
		// The folder sits under a collapsed strict ancestor, so its whole
		// block is hidden and must stay hidden. Only the Collapsed flag
		// changes; the block is revealed when that ancestor expands.
	default:
		c.revealBlock(start, end)
	}
	return nil
}

// hideBlock marks every node in [start, end) hidden. A collapsed ancestor
// hides the whole subtree regardless of any nested expand state, so no
// depth bookkeeping is needed on this path.
func (c *Controller) hideBlock(start, end int) {
	for i := start; i < end; i++ {
		c.seq[i].Hidden = true
	}
}

// revealBlock walks [start, end) in order, unhiding nodes while honoring
// nested collapsed folders. suppress tracks the depth of the nearest still-
// collapsed folder on the current path: nodes strictly deeper than it keep
// their Hidden flag (they are governed by that folder, not by the toggled
// one). A node at or above the suppression depth ends the suppression
// exactly there: equal depth means sibling, not descendant.
func (c *Controller) revealBlock(start, end int) {
	suppress := -1 // no active suppression; depths are never negative here
	for i := start; i < end; i++ {
		n := &c.seq[i]
		if suppress >= 0 && n.Depth > suppress {
			continue
		}
		suppress = -1
		n.Hidden = false
		if n.IsFolder && n.Collapsed {
			suppress = n.Depth
		}
	}
}

// CollapseAll collapses every expanded folder. Order is irrelevant on this
// path since collapsing hides descendants unconditionally.
func (c *Controller) CollapseAll() error {
	for i := range c.seq {
		if c.seq[i].IsFolder && !c.seq[i].Collapsed {
			if err := c.Toggle(i); err != nil {
				return err
			}
		}
	}
	return nil
}

// ExpandAll expands every collapsed folder. Folders are visited in sequence
// order so outer folders expand before the nested ones they reveal.
func (c *Controller) ExpandAll() error {
	for i := range c.seq {
		if c.seq[i].IsFolder && c.seq[i].Collapsed {
			if err := c.Toggle(i); err != nil {
				return err
			}
		}
	}
	return nil
}

// AnyCollapsed reports whether at least one folder is collapsed.
func (c *Controller) AnyCollapsed() bool {
	for i := range c.seq {
		if c.seq[i].IsFolder && c.seq[i].Collapsed {
			return true
		}
	}
	return false
}

// VisibleIndices returns the sequence positions of all currently visible
// rows, in order. This is the renderer's row -> node mapping.
func (c *Controller) VisibleIndices() []int {
	out := make([]int, 0, len(c.seq))
	for i := range c.seq {
		if !c.seq[i].Hidden {
			out = append(out, i)
		}
	}
	return out
}

// Validate checks the whole sequence: structural soundness (non-negative
// depths, a top-level start, no pre-order depth jumps) and the derived
// invariant (Hidden iff a strict ancestor folder is collapsed). Intended for
// load-time checking of untrusted flattener output.
func (c *Controller) Validate() error {
	type ancestor struct {
		depth     int
		collapsed bool
	}
	var stack []ancestor

	for i := range c.seq {
		n := &c.seq[i]
		if n.Depth < 0 {
			return fmt.Errorf("%w: negative depth %d at %d", ErrMalformedSequence, n.Depth, i)
		}
		if i == 0 && n.Depth != 0 {
			return fmt.Errorf("%w: sequence starts at depth %d", ErrMalformedSequence, n.Depth)
		}
		if i > 0 && n.Depth > c.seq[i-1].Depth+1 {
			return fmt.Errorf("%w: depth jump %d -> %d at %d", ErrMalformedSequence, c.seq[i-1].Depth, n.Depth, i)
		}
		if i > 0 && n.Depth > c.seq[i-1].Depth && !c.seq[i-1].IsFolder {
			return fmt.Errorf("%w: leaf %d (%s) has descendants", ErrMalformedSequence, i-1, c.seq[i-1].Slug)
		}

		// Pop ancestors at or below this node's depth.
		for len(stack) > 0 && stack[len(stack)-1].depth >= n.Depth {
			stack = stack[:len(stack)-1]
		}

		wantHidden := false
		for _, a := range stack {
			if a.collapsed {
				wantHidden = true
				break
			}
		}
		if n.Hidden != wantHidden {
			return fmt.Errorf("%w: node %d (%s) hidden=%v, want %v", ErrMalformedSequence, i, n.Slug, n.Hidden, wantHidden)
		}

		if n.IsFolder {
			stack = append(stack, ancestor{depth: n.Depth, collapsed: n.Collapsed})
		}
	}
	return nil
}
