// Package tree implements the decision tree structure, the per-tree
// weighted-sample training space, the splitter, and the iterative tree
// trainer. Most of the algorithms here follow Louppe, G. (2014)
// "Understanding Random Forests: From Theory to Practice", chapter 3.
package tree

// Node is either an internal node holding (feature, threshold, children) or
// a leaf holding a value. A node is a leaf iff its Left child index is 0 (0
// is never a valid child index since 0 is always the root).
type Node struct {
	Feature   int32
	Threshold float32
	Left      uint32
	Right     uint32
	// Value is the leaf value for a regressor, or an offset into the
	// classifier's leaf probability table (see Tree.LeafTable).
	Value float64
}

func (n *Node) isLeaf() bool { return n.Left == 0 }

// Tree is a mutable vector of nodes; the root is always index 0. A
// classifier tree additionally owns a flat leaf probability table: each
// leaf's chunk of K floats sums to 1.
type Tree struct {
	Nodes      []Node
	NumClasses int       // 0 for a regressor tree
	LeafTable  []float64 // len == numLeaves*NumClasses, classifier trees only
}

// NewTree returns a tree with a single root leaf node. numClasses is 0 for
// a regressor tree.
func NewTree(numClasses int) *Tree {
	return &Tree{
		Nodes:      []Node{{}},
		NumClasses: numClasses,
	}
}

// Split appends two default (leaf) nodes to node and wires them as its
// children. Panics if node is already an internal node — growing an
// already-split node is a contract violation, not a recoverable error.
func (t *Tree) Split(node uint32) (left, right uint32) {
	if !t.Nodes[node].isLeaf() {
		panic("tree: split called on a non-leaf node")
	}

	left = uint32(len(t.Nodes))
	t.Nodes = append(t.Nodes, Node{})
	right = uint32(len(t.Nodes))
	t.Nodes = append(t.Nodes, Node{})

	t.Nodes[node].Left = left
	t.Nodes[node].Right = right

	return left, right
}

// SetSplit records the (feature, threshold) an internal node splits on.
func (t *Tree) SetSplit(node uint32, feature int, threshold float32) {
	t.Nodes[node].Feature = int32(feature)
	t.Nodes[node].Threshold = threshold
}

// SetLeafValue records a regressor leaf's predicted value.
func (t *Tree) SetLeafValue(node uint32, value float64) {
	t.Nodes[node].Value = value
}

// AppendLeafProbs appends a length-NumClasses probability chunk to the leaf
// table and records its offset on node. Used by classifier trees only.
func (t *Tree) AppendLeafProbs(node uint32, probs []float64) {
	offset := len(t.LeafTable)
	t.LeafTable = append(t.LeafTable, probs...)
	t.Nodes[node].Value = float64(offset)
}

// Predict traverses from the root, descending left while
// sample[feature] <= threshold and right otherwise, and returns the
// reached leaf's node index.
func (t *Tree) Predict(featureVal func(feature int) float32) uint32 {
	n := uint32(0)
	for {
		node := &t.Nodes[n]
		if node.isLeaf() {
			return n
		}
		if featureVal(int(node.Feature)) <= node.Threshold {
			n = node.Left
		} else {
			n = node.Right
		}
	}
}

// PredictValue traverses the tree and returns the regressor leaf value.
func (t *Tree) PredictValue(featureVal func(feature int) float32) float64 {
	leaf := t.Predict(featureVal)
	return t.Nodes[leaf].Value
}

// PredictProbs traverses the tree and returns the classifier leaf's
// length-NumClasses probability chunk.
func (t *Tree) PredictProbs(featureVal func(feature int) float32) []float64 {
	leaf := t.Predict(featureVal)
	return t.LeafProbsAt(leaf)
}

// LeafProbsAt returns the length-NumClasses probability chunk for an
// already-traversed leaf node index, e.g. one obtained from Predict.
func (t *Tree) LeafProbsAt(leaf uint32) []float64 {
	offset := int(t.Nodes[leaf].Value)
	return t.LeafTable[offset : offset+t.NumClasses]
}

// LeafValueAt returns the regressor leaf value for an already-traversed
// leaf node index.
func (t *Tree) LeafValueAt(leaf uint32) float64 {
	return t.Nodes[leaf].Value
}
