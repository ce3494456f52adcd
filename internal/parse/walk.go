package parse

import (
	"reflect"
)

type TraversalAction int

const (
	ContinueTraversal TraversalAction = iota
	Prune
	StopTraversal
)

type NodeHandler = func(node Node, parent Node) TraversalAction

// Walk performs a pre-order (depth first) traversal of the AST.
func Walk(node Node, handle NodeHandler) {
	walk(node, nil, handle)
}

func walk(node, parent Node, fn NodeHandler) TraversalAction {
	if node == nil || reflect.ValueOf(node).IsNil() {
		return ContinueTraversal
	}

	switch fn(node, parent) {
	case StopTraversal:
		return StopTraversal
	case Prune:
		return ContinueTraversal
	}

	children := func(nodes ...Node) TraversalAction {
		for _, child := range nodes {
			if walk(child, node, fn) == StopTraversal {
				return StopTraversal
			}
		}
		return ContinueTraversal
	}

	switch n := node.(type) {
	case *Chunk:
		return children(n.Statements...)
	case *MemberExpression:
		return children(n.Object, n.Property)
	case *CallExpression:
		nodes := []Node{n.Callee}
		for _, arg := range n.Arguments {
			nodes = append(nodes, arg)
		}
		return children(nodes...)
	case *CallArgument:
		return children(n.Name, n.Value)
	case *HistoryExpression:
		return children(n.Target, n.Offset)
	case *BinaryExpression:
		return children(n.Left, n.Right)
	case *UnaryExpression:
		return children(n.Operand)
	case *TernaryExpression:
		return children(n.Condition, n.Consequent, n.Alternate)
	case *VariableDeclaration:
		return children(n.Name, n.Right)
	case *AssignmentStatement:
		return children(n.Name, n.Right)
	case *Block:
		return children(n.Statements...)
	case *IfStatement:
		return children(n.Condition, n.Consequent, n.Alternate)
	case *ForStatement:
		return children(n.Counter, n.From, n.To, n.Body)
	case *FunctionParameter:
		return children(n.Name)
	case *FunctionDeclaration:
		nodes := []Node{n.Name}
		for _, param := range n.Parameters {
			nodes = append(nodes, param)
		}
		nodes = append(nodes, n.Body)
		return children(nodes...)
	}

	return ContinueTraversal
}

// FindNodes returns, in pre-order, all the nodes of the tree matching the
// given filter.
func FindNodes(root Node, filter func(node Node) bool) []Node {
	var found []Node

	Walk(root, func(node, parent Node) TraversalAction {
		if filter(node) {
			found = append(found, node)
		}
		return ContinueTraversal
	})

	return found
}

// CollectErrors aggregates the parsing errors attached to the nodes of the
// tree, in pre-order.
func CollectErrors(root Node) []Error {
	var errs []Error

	Walk(root, func(node, parent Node) TraversalAction {
		base := node.Base()
		if base.Err != nil {
			errs = append(errs, Error{Err: base.Err, Span: base.Span})
		}
		return ContinueTraversal
	})

	return errs
}
