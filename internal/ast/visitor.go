package ast

// Visitor defines the interface for visiting syntax tree nodes
type Visitor interface {
	VisitLiteral(node *Literal) interface{}
	VisitBinary(node *Binary) interface{}
	VisitUnary(node *Unary) interface{}
	VisitAssignment(node *Assignment) interface{}
	VisitLetDeclaration(node *LetDeclaration) interface{}
	VisitIfElse(node *IfElse) interface{}
	VisitBlock(node *Block) interface{}
	VisitPrint(node *Print) interface{}
}

// Children returns the direct subtrees of node in source order. A nil
// else branch is omitted.
func Children(node Expr) []Expr {
	switch n := node.(type) {
	case *Binary:
		return []Expr{n.Left, n.Right}
	case *Unary:
		return []Expr{n.Operand}
	case *Assignment:
		return []Expr{n.Value}
	case *LetDeclaration:
		return []Expr{n.Value}
	case *IfElse:
		children := []Expr{n.Condition, n.Then}
		if n.Else != nil {
			children = append(children, n.Else)
		}
		return children
	case *Block:
		return n.Statements
	case *Print:
		return []Expr{n.Value}
	default:
		return nil
	}
}

// Inspect traverses the tree rooted at node depth-first in pre-order.
// When fn returns false the children of that node are skipped.
func Inspect(node Expr, fn func(Expr) bool) {
	if node == nil || isNilBlock(node) {
		return
	}
	if !fn(node) {
		return
	}
	for _, child := range Children(node) {
		Inspect(child, fn)
	}
}

// Count returns the number of nodes in the tree rooted at node
func Count(node Expr) int {
	count := 0
	Inspect(node, func(Expr) bool {
		count++
		return true
	})
	return count
}

// isNilBlock catches a typed nil *Block stored in an Expr
func isNilBlock(node Expr) bool {
	b, ok := node.(*Block)
	return ok && b == nil
}
