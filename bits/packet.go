package bits

import (
	"encoding/json"
	"fmt"
)

// Packet is one decoded unit of a transmission: either a literal value or
// an operator over sub-packets. The two cases below are the only
// implementations.
type Packet interface {
	packet()
}

type Literal struct {
	Version uint8  `json:"version"`
	Value   uint64 `json:"value"`
}

func (l *Literal) packet() {}

type Operator struct {
	Version  uint8        `json:"version"`
	Op       OperatorKind `json:"op"`
	Children []Packet     `json:"packets"`
}

func (o *Operator) packet() {}

// OperatorKind selects the reduction an operator packet applies to its
// sub-packets.
type OperatorKind uint8

const (
	Sum OperatorKind = iota
	Product
	Minimum
	Maximum
	GreaterThan
	LessThan
	EqualTo
)

func (k OperatorKind) String() string {
	switch k {
	case Sum:
		return "sum"
	case Product:
		return "product"
	case Minimum:
		return "minimum"
	case Maximum:
		return "maximum"
	case GreaterThan:
		return "greaterThan"
	case LessThan:
		return "lessThan"
	case EqualTo:
		return "equalTo"
	}

	return fmt.Sprintf("operator(%d)", uint8(k))
}

func (k OperatorKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// literalTypeId tags a literal packet. Every other 3-bit type id names an
// operator.
const literalTypeId = 4

func operatorForTypeId(typeId uint64) (OperatorKind, error) {
	switch typeId {
	case 0:
		return Sum, nil
	case 1:
		return Product, nil
	case 2:
		return Minimum, nil
	case 3:
		return Maximum, nil
	case 5:
		return GreaterThan, nil
	case 6:
		return LessThan, nil
	case 7:
		return EqualTo, nil
	}

	return 0, fmt.Errorf("no operator for type id %d", typeId)
}
