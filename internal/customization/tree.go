package customization

import (
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-mall-service/internal/model"
)

var ErrCustomizationCycle = errors.New("customization groups form a cycle")

type NodeKind string

const (
	KindGroup         NodeKind = "group"
	KindCustomization NodeKind = "customization"
)

// Node is one renderable row: a group header or one of its options.
type Node struct {
	Kind          NodeKind                  `json:"kind"`
	Depth         int                       `json:"depth"`
	Group         *model.CustomizationGroup `json:"group,omitempty"`
	Customization *model.Customization      `json:"customization,omitempty"`
}

// Traverse lays out the tree depth first: every root group (Seq == 1) in input order, each followed
// by its customizations in input order, and any child group right after the customization that
// unlocks it. Children that reference unknown groups are ignored. A group reachable from itself
// yields ErrCustomizationCycle.
func Traverse(groups []model.CustomizationGroup, customizations []model.Customization) ([]Node, error) {
	byID := make(map[string]*model.CustomizationGroup, len(groups))
	for i := range groups {
		byID[groups[i].ID] = &groups[i]
	}
	children := make(map[string][]*model.Customization, len(groups))
	for i := range customizations {
		c := &customizations[i]
		children[c.Parent] = append(children[c.Parent], c)
	}

	w := walker{groups: byID, children: children, onPath: map[string]bool{}}
	for i := range groups {
		if groups[i].Seq != 1 {
			continue
		}
		if err := w.visit(&groups[i], 0); err != nil {
			return nil, err
		}
	}
	return w.out, nil
}

type walker struct {
	groups   map[string]*model.CustomizationGroup
	children map[string][]*model.Customization
	onPath   map[string]bool
	out      []Node
}

func (w *walker) visit(g *model.CustomizationGroup, depth int) error {
	if w.onPath[g.ID] {
		return fmt.Errorf("%w: group %s", ErrCustomizationCycle, g.ID)
	}
	w.onPath[g.ID] = true
	defer delete(w.onPath, g.ID)

	w.out = append(w.out, Node{Kind: KindGroup, Depth: depth, Group: g})
	for _, c := range w.children[g.ID] {
		w.out = append(w.out, Node{Kind: KindCustomization, Depth: depth + 1, Customization: c})
		if c.Child == nil {
			continue
		}
		child, ok := w.groups[*c.Child]
		if !ok {
			continue
		}
		if err := w.visit(child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// CheckAcyclic reports ErrCustomizationCycle if any group, root or not, can reach itself through
// the child relation.
func CheckAcyclic(groups []model.CustomizationGroup, customizations []model.Customization) error {
	next := make(map[string][]string, len(groups))
	known := make(map[string]bool, len(groups))
	for _, g := range groups {
		known[g.ID] = true
	}
	for _, c := range customizations {
		if c.Child != nil && known[*c.Child] {
			next[c.Parent] = append(next[c.Parent], *c.Child)
		}
	}

	const (
		unvisited = iota
		active
		done
	)
	state := make(map[string]int, len(groups))
	var dfs func(id string) error
	dfs = func(id string) error {
		switch state[id] {
		case active:
			return fmt.Errorf("%w: group %s", ErrCustomizationCycle, id)
		case done:
			return nil
		}
		state[id] = active
		for _, n := range next[id] {
			if err := dfs(n); err != nil {
				return err
			}
		}
		state[id] = done
		return nil
	}
	for _, g := range groups {
		if err := dfs(g.ID); err != nil {
			return err
		}
	}
	return nil
}
