package expression

import (
	"strconv"
	"strings"
)

// Node is a type-checked factor expression tree.
type Node interface {
	Type() Type
	// String renders the canonical form of the subtree.
	String() string
	Pos() int
	precedence() int
}

const (
	precAdditive = iota + 1
	precMultiplicative
	precUnary
	precPrimary
)

type Operator byte

const (
	OpAdd Operator = '+'
	OpSub Operator = '-'
	OpMul Operator = '*'
	OpDiv Operator = '/'
)

func (o Operator) precedence() int {
	if o == OpMul || o == OpDiv {
		return precMultiplicative
	}
	return precAdditive
}

type NumberLit struct {
	Value float64
	At    int
}

func (n *NumberLit) Type() Type      { return TypeNumber }
func (n *NumberLit) Pos() int        { return n.At }
func (n *NumberLit) precedence() int { return precPrimary }
func (n *NumberLit) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// CurrentDate is the evaluation context's reference date.
type CurrentDate struct {
	At int
}

func (n *CurrentDate) Type() Type      { return TypeDate }
func (n *CurrentDate) Pos() int        { return n.At }
func (n *CurrentDate) precedence() int { return precPrimary }
func (n *CurrentDate) String() string  { return currentDateKeyword }

type UnaryExpr struct {
	Op      Operator
	Operand Node
	At      int
}

func (n *UnaryExpr) Type() Type      { return TypeNumber }
func (n *UnaryExpr) Pos() int        { return n.At }
func (n *UnaryExpr) precedence() int { return precUnary }
func (n *UnaryExpr) String() string {
	operand := n.Operand.String()
	if n.Operand.precedence() < precUnary {
		operand = "(" + operand + ")"
	}
	return string(n.Op) + operand
}

type BinaryExpr struct {
	Op    Operator
	Left  Node
	Right Node
	At    int
}

func (n *BinaryExpr) Type() Type      { return TypeNumber }
func (n *BinaryExpr) Pos() int        { return n.At }
func (n *BinaryExpr) precedence() int { return n.Op.precedence() }

// String parenthesizes only where precedence or left associativity needs it.
func (n *BinaryExpr) String() string {
	p := n.Op.precedence()
	left := n.Left.String()
	if n.Left.precedence() < p {
		left = "(" + left + ")"
	}
	right := n.Right.String()
	if n.Right.precedence() <= p {
		right = "(" + right + ")"
	}
	return left + string(n.Op) + right
}

type CallExpr struct {
	Func Function
	Args []Node
	At   int
}

func (n *CallExpr) Type() Type      { return n.Func.ResultType() }
func (n *CallExpr) Pos() int        { return n.At }
func (n *CallExpr) precedence() int { return precPrimary }
func (n *CallExpr) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return n.Func.String() + "(" + strings.Join(args, ", ") + ")"
}

// Equal compares two trees structurally, ignoring source positions.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case *NumberLit:
		y, ok := b.(*NumberLit)
		return ok && x.Value == y.Value
	case *CurrentDate:
		_, ok := b.(*CurrentDate)
		return ok
	case *UnaryExpr:
		y, ok := b.(*UnaryExpr)
		return ok && x.Op == y.Op && Equal(x.Operand, y.Operand)
	case *BinaryExpr:
		y, ok := b.(*BinaryExpr)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *CallExpr:
		y, ok := b.(*CallExpr)
		if !ok || x.Func != y.Func || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Walk visits n and its descendants depth first.
func Walk(n Node, fn func(Node)) {
	fn(n)
	switch x := n.(type) {
	case *UnaryExpr:
		Walk(x.Operand, fn)
	case *BinaryExpr:
		Walk(x.Left, fn)
		Walk(x.Right, fn)
	case *CallExpr:
		for _, a := range x.Args {
			Walk(a, fn)
		}
	}
}
