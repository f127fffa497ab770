package hash

import (
	"errors"

	"github.com/nspcc-dev/wirecodec/pkg/util"
)

// MerkleTree is a binary tree of double SHA256 hashes over a list of leaves,
// a node without a right sibling is paired with itself.
type MerkleTree struct {
	root  *MerkleTreeNode
	depth int
}

// MerkleTreeNode represents a node in the MerkleTree.
type MerkleTreeNode struct {
	hash       util.Uint256
	parent     *MerkleTreeNode
	leftChild  *MerkleTreeNode
	rightChild *MerkleTreeNode
}

// NewMerkleTree builds a MerkleTree over the given hashes.
func NewMerkleTree(hashes []util.Uint256) (*MerkleTree, error) {
	if len(hashes) == 0 {
		return nil, errors.New("length of the hashes cannot be zero")
	}

	nodes := make([]*MerkleTreeNode, len(hashes))
	for i := range hashes {
		nodes[i] = &MerkleTreeNode{hash: hashes[i]}
	}

	depth := 1
	for len(nodes) > 1 {
		nodes = buildLevel(nodes)
		depth++
	}
	return &MerkleTree{root: nodes[0], depth: depth}, nil
}

// Root returns the computed root hash of the MerkleTree.
func (t *MerkleTree) Root() util.Uint256 {
	return t.root.hash
}

// Depth returns the number of levels in the tree including leaves.
func (t *MerkleTree) Depth() int {
	return t.depth
}

func buildLevel(leaves []*MerkleTreeNode) []*MerkleTreeNode {
	parents := make([]*MerkleTreeNode, (len(leaves)+1)/2)
	for i := range parents {
		parents[i] = &MerkleTreeNode{leftChild: leaves[i*2]}
		leaves[i*2].parent = parents[i]

		if i*2+1 == len(leaves) {
			parents[i].rightChild = parents[i].leftChild
		} else {
			parents[i].rightChild = leaves[i*2+1]
			leaves[i*2+1].parent = parents[i]
		}
		parents[i].hash = hashPair(parents[i].leftChild.hash, parents[i].rightChild.hash)
	}
	return parents
}

// IsLeaf returns whether this node is a leaf node or not.
func (n *MerkleTreeNode) IsLeaf() bool {
	return n.leftChild == nil && n.rightChild == nil
}

// IsRoot returns whether this node is a root node or not.
func (n *MerkleTreeNode) IsRoot() bool {
	return n.parent == nil
}

// CalcMerkleRoot calculates the Merkle root hash value for the given slice of
// hashes without building the tree. The slice is modified. Empty slice gives
// a zero hash.
func CalcMerkleRoot(hashes []util.Uint256) util.Uint256 {
	if len(hashes) == 0 {
		return util.Uint256{}
	}
	for len(hashes) > 1 {
		if len(hashes)%2 == 1 {
			hashes = append(hashes, hashes[len(hashes)-1])
		}
		for i := 0; i < len(hashes)/2; i++ {
			hashes[i] = hashPair(hashes[i*2], hashes[i*2+1])
		}
		hashes = hashes[:len(hashes)/2]
	}
	return hashes[0]
}

func hashPair(l, r util.Uint256) util.Uint256 {
	var buf [util.Uint256Size * 2]byte
	copy(buf[:], l[:])
	copy(buf[util.Uint256Size:], r[:])
	return DoubleSha256(buf[:])
}
