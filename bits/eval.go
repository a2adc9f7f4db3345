package bits

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Eval reduces a decoded packet tree to its value. Trees returned by
// Decode always satisfy the operator arity rules; Eval panics on a
// hand-built tree that violates them instead of producing a wrong number.
func Eval(packet Packet) uint64 {
	switch p := packet.(type) {
	case *Literal:
		return p.Value
	case *Operator:
		return evalOperator(p)
	}

	panic(fmt.Sprintf("unsupported packet type %T", packet))
}

func evalOperator(p *Operator) uint64 {
	switch p.Op {
	case Sum:
		var value uint64

		for _, child := range p.Children {
			value += Eval(child)
		}

		return value
	case Product:
		value := uint64(1)

		for _, child := range p.Children {
			value *= Eval(child)
		}

		return value
	case Minimum:
		value := firstOperand(p)

		for _, child := range p.Children[1:] {
			value = minOf(value, Eval(child))
		}

		return value
	case Maximum:
		value := firstOperand(p)

		for _, child := range p.Children[1:] {
			value = maxOf(value, Eval(child))
		}

		return value
	case GreaterThan:
		a, b := comparisonOperands(p)
		return boolValue(a > b)
	case LessThan:
		a, b := comparisonOperands(p)
		return boolValue(a < b)
	case EqualTo:
		a, b := comparisonOperands(p)
		return boolValue(a == b)
	}

	panic(fmt.Sprintf("unsupported operator %s", p.Op))
}

func firstOperand(p *Operator) uint64 {
	if len(p.Children) == 0 {
		panic(fmt.Sprintf("%s operator with no sub-packets", p.Op))
	}

	return Eval(p.Children[0])
}

func comparisonOperands(p *Operator) (uint64, uint64) {
	if len(p.Children) != 2 {
		panic(fmt.Sprintf("%s operator with %d sub-packets", p.Op, len(p.Children)))
	}

	return Eval(p.Children[0]), Eval(p.Children[1])
}

func boolValue(v bool) uint64 {
	if v {
		return 1
	}

	return 0
}

func minOf[V constraints.Ordered](a, b V) V {
	if a < b {
		return a
	}

	return b
}

func maxOf[V constraints.Ordered](a, b V) V {
	if a > b {
		return a
	}

	return b
}

// SumVersions adds up the version field of every packet in the tree. The
// sum carries no evaluation meaning; it serves as a transmission
// integrity figure.
func SumVersions(packet Packet) uint64 {
	switch p := packet.(type) {
	case *Literal:
		return uint64(p.Version)
	case *Operator:
		sum := uint64(p.Version)

		for _, child := range p.Children {
			sum += SumVersions(child)
		}

		return sum
	}

	panic(fmt.Sprintf("unsupported packet type %T", packet))
}
