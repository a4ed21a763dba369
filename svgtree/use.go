package svgtree

import (
	"fmt"
	"maps"
	"strings"
)

// maxElements bounds the size of a tree after <use> instantiation.
const maxElements = 1 << 20

// Href returns the element referenced by the href attribute
// of `id` (also accepting xlink:href), or NoNode.
func (t *Tree) Href(id NodeID) NodeID {
	href := strings.TrimSpace(t.elems[id].Attrs["href"])
	if !strings.HasPrefix(href, "#") {
		return NoNode
	}
	return t.GetByID(href[1:])
}

func (t *Tree) instantiateUses() error {
	var uses []NodeID
	t.Walk(t.Root, func(n NodeID) bool {
		if t.elems[n].Kind == Use {
			uses = append(uses, n)
		}
		return true
	})
	// copies are synthetic: the index stays valid while instantiating
	t.indexIDs()
	for _, u := range uses {
		if err := t.instantiate(u, nil); err != nil {
			return err
		}
	}
	return nil
}

// instantiate attaches a synthetic copy of the element referenced by `use`.
// `stack` holds the references being instantiated, to detect cycles.
func (t *Tree) instantiate(use NodeID, stack []NodeID) error {
	href := t.elems[use].Attrs["href"]
	ref := t.Href(use)
	if ref == NoNode {
		return fmt.Errorf("%w: reference %q not found", ErrInvalidUse, href)
	}
	if ref == use || t.IsAncestor(ref, use) {
		return fmt.Errorf("%w: %q references one of its ancestors", ErrInvalidUse, href)
	}
	for _, s := range stack {
		if s == ref {
			return fmt.Errorf("%w: cyclic reference %q", ErrInvalidUse, href)
		}
	}
	stack = append(stack, ref)

	var nestedUses []NodeID
	root, err := t.copySubtree(ref, &nestedUses)
	if err != nil {
		return err
	}
	if err := t.Attach(use, root); err != nil {
		return err
	}
	for _, u := range nestedUses {
		if err := t.instantiate(u, stack); err != nil {
			return err
		}
	}
	return nil
}

// copySubtree returns a detached, synthetic copy of `src` and its
// non synthetic descendants. Copied <use> elements are collected in `uses`.
func (t *Tree) copySubtree(src NodeID, uses *[]NodeID) (NodeID, error) {
	if len(t.elems) >= maxElements {
		return NoNode, fmt.Errorf("%w: too many instantiated elements", ErrInvalidUse)
	}
	orig := t.elems[src]
	dst := t.NewElement(orig.Kind, orig.Tag)
	el := &t.elems[dst]
	el.ID = orig.ID
	el.Classes = append([]string(nil), orig.Classes...)
	el.Inline = orig.Inline
	el.Presentation = orig.Presentation
	el.Attrs = maps.Clone(orig.Attrs)
	el.Text = orig.Text
	el.Synthetic = true
	if orig.Kind == Use {
		*uses = append(*uses, dst)
	}

	for _, child := range orig.Children {
		if t.elems[child].Synthetic {
			continue
		}
		c, err := t.copySubtree(child, uses)
		if err != nil {
			return NoNode, err
		}
		if err := t.Attach(dst, c); err != nil {
			return NoNode, err
		}
	}
	return dst, nil
}
