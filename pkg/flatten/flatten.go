// Package flatten turns a set of ListHub items into the depth-tagged,
// pre-order sequence the visibility controller operates on. The folder
// hierarchy is recovered from each item's slash-separated file path, the way
// the original sidebar derives it.
package flatten

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vanderheijden86/listfold/pkg/model"
)

// Options controls sequence construction.
type Options struct {
	// CollapseDepth marks folders at this depth or deeper as initially
	// collapsed. Negative means everything starts expanded. The emitted
	// sequence always satisfies the derived invariant: descendants of a
	// pre-collapsed folder arrive hidden.
	CollapseDepth int
}

// DefaultOptions matches the original sidebar: top-level folders open,
// everything deeper collapsed.
func DefaultOptions() Options {
	return Options{CollapseDepth: 1}
}

// dir is the intermediate folder tree rebuilt from item paths.
type dir struct {
	name    string
	subdirs map[string]*dir
	items   []*model.Item
}

func newDir(name string) *dir {
	return &dir{name: name, subdirs: make(map[string]*dir)}
}

func (d *dir) child(name string) *dir {
	if sub, ok := d.subdirs[name]; ok {
		return sub
	}
	sub := newDir(name)
	d.subdirs[name] = sub
	return sub
}

// Flatten builds the pre-order sequence for items. Within each folder,
// subfolders come first (alphabetical), then items ordered by file name.
// Items failing validation abort the build; the flattener never emits a
// sequence it cannot vouch for.
func Flatten(items []model.Item, opts Options) (model.Sequence, error) {
	root := newDir("")

	for i := range items {
		it := &items[i]
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("flatten: %w", err)
		}
		d := root
		for _, seg := range it.FolderPath() {
			d = d.child(seg)
		}
		d.items = append(d.items, it)
	}

	var seq model.Sequence
	emit(&seq, root, 0, opts, "")
	return seq, nil
}

// emit appends d's subfolders and items at the given depth. hiddenBy, when
// non-empty, names the collapsed ancestor governing this level; every node
// emitted under it arrives hidden so the sequence is invariant-consistent
// before the first toggle.
func emit(seq *model.Sequence, d *dir, depth int, opts Options, hiddenBy string) {
	names := make([]string, 0, len(d.subdirs))
	for name := range d.subdirs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sub := d.subdirs[name]
		collapsed := opts.CollapseDepth >= 0 && depth >= opts.CollapseDepth
		*seq = append(*seq, model.Node{
			Depth:     depth,
			IsFolder:  true,
			Collapsed: collapsed,
			Hidden:    hiddenBy != "",
			Title:     name,
			Slug:      name,
		})
		childHiddenBy := hiddenBy
		if childHiddenBy == "" && collapsed {
			childHiddenBy = name
		}
		emit(seq, sub, depth+1, opts, childHiddenBy)
	}

	items := make([]*model.Item, len(d.items))
	copy(items, d.items)
	sort.Slice(items, func(i, j int) bool {
		return fileName(items[i]) < fileName(items[j])
	})
	for _, it := range items {
		*seq = append(*seq, model.Node{
			Depth:  depth,
			Hidden: hiddenBy != "",
			Title:  it.DisplayTitle(),
			Slug:   it.Slug,
			Item:   it,
		})
	}
}

func fileName(it *model.Item) string {
	segs := strings.Split(it.FilePath, "/")
	return segs[len(segs)-1]
}
