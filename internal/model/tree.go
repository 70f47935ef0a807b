package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// dumpNode mirrors one node of an XGBoost JSON model dump
// (Booster.get_dump(dump_format="json")).
type dumpNode struct {
	NodeID         int        `json:"nodeid"`
	Split          string     `json:"split,omitempty"`
	SplitCondition float64    `json:"split_condition,omitempty"`
	Yes            int        `json:"yes,omitempty"`
	No             int        `json:"no,omitempty"`
	Leaf           *float64   `json:"leaf,omitempty"`
	Children       []dumpNode `json:"children,omitempty"`
}

// node is a compiled tree node. Leaves have feature == -1.
type node struct {
	feature   int
	threshold float32
	yes       int
	no        int
	value     float64
}

// tree is a flattened regression tree; nodes[0] is the root.
type tree struct {
	nodes []node
}

// eval walks the tree for an encoded feature vector. A split sends x to
// "yes" when x[feature] < threshold, compared in float32 the way XGBoost
// stores thresholds and casts features.
func (t tree) eval(x []float64) float64 {
	i := 0
	for {
		n := t.nodes[i]
		if n.feature < 0 {
			return n.value
		}
		if float32(x[n.feature]) < n.threshold {
			i = n.yes
		} else {
			i = n.no
		}
	}
}

// compileTree flattens a dump tree, resolving split names against the encoded
// column index and node ids against slice positions.
func compileTree(root dumpNode, index map[string]int, width int) (tree, error) {
	var flat []dumpNode
	var collect func(n dumpNode)
	collect = func(n dumpNode) {
		flat = append(flat, n)
		for _, c := range n.Children {
			collect(c)
		}
	}
	collect(root)

	pos := make(map[int]int, len(flat))
	for i, n := range flat {
		if _, dup := pos[n.NodeID]; dup {
			return tree{}, fmt.Errorf("duplicate node id %d", n.NodeID)
		}
		pos[n.NodeID] = i
	}

	nodes := make([]node, len(flat))
	for i, n := range flat {
		if n.Leaf != nil {
			if len(n.Children) > 0 {
				return tree{}, fmt.Errorf("node %d is a leaf with children", n.NodeID)
			}
			nodes[i] = node{feature: -1, value: *n.Leaf}
			continue
		}

		feature, err := resolveFeature(n.Split, index, width)
		if err != nil {
			return tree{}, fmt.Errorf("node %d: %w", n.NodeID, err)
		}
		yes, ok := pos[n.Yes]
		if !ok {
			return tree{}, fmt.Errorf("node %d: yes branch %d not found", n.NodeID, n.Yes)
		}
		no, ok := pos[n.No]
		if !ok {
			return tree{}, fmt.Errorf("node %d: no branch %d not found", n.NodeID, n.No)
		}
		if yes <= i || no <= i {
			return tree{}, fmt.Errorf("node %d: branch points back up the tree", n.NodeID)
		}
		nodes[i] = node{feature: feature, threshold: float32(n.SplitCondition), yes: yes, no: no}
	}
	return tree{nodes: nodes}, nil
}

// resolveFeature maps a split reference to a vector position. XGBoost dumps
// use the encoded column name when the booster was trained with feature names
// and "f<N>" otherwise.
func resolveFeature(split string, index map[string]int, width int) (int, error) {
	if i, ok := index[split]; ok {
		return i, nil
	}
	if rest, ok := strings.CutPrefix(split, "f"); ok {
		if i, err := strconv.Atoi(rest); err == nil && i >= 0 && i < width {
			return i, nil
		}
	}
	if split == "" {
		return 0, errors.New("split node without a feature")
	}
	return 0, fmt.Errorf("split feature %q not in schema", split)
}
