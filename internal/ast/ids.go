package ast

// NodeID is the unique, monotonically increasing identity of an AST node.
// It keys every side table built by later phases.
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }
