package bits

import (
	"errors"
	"fmt"
)

// Decode parses one transmission from its hexadecimal text form and
// returns the root packet. Decoding is all-or-nothing: any error
// invalidates the whole transmission.
func Decode(transmission string) (Packet, error) {
	data, err := decodeHex(transmission)

	if err != nil {
		return nil, err
	}

	cursor := newBitCursor(data, len(transmission)*4)

	packet, err := decodePacket(cursor)

	if err != nil {
		return nil, err
	}

	// The transmission is padded to a byte boundary with zero bits. A set
	// bit after the root packet means the input was not one transmission.
	for cursor.remainingBits() > 0 {
		bit, err := cursor.readBits(1)

		if err != nil {
			return nil, err
		}

		if bit != 0 {
			return nil, &InvalidTransmission{
				error: errors.New("unexpected data after end of root packet"),
			}
		}
	}

	return packet, nil
}

func decodeHex(transmission string) ([]byte, error) {
	if len(transmission) == 0 {
		return nil, &InvalidTransmission{
			error: errors.New("empty transmission"),
		}
	}

	data := make([]byte, (len(transmission)+1)/2)

	for i := 0; i < len(transmission); i++ {
		nibble, err := hexNibble(transmission[i])

		if err != nil {
			return nil, err
		}

		if i%2 == 0 {
			data[i/2] = nibble << 4
		} else {
			data[i/2] |= nibble
		}
	}

	return data, nil
}

func hexNibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	}

	return 0, &InvalidTransmission{
		error: fmt.Errorf("invalid hex digit %q", c),
	}
}

func decodePacket(cursor *bitCursor) (Packet, error) {
	version, err := cursor.readBits(3)

	if err != nil {
		return nil, err
	}

	typeId, err := cursor.readBits(3)

	if err != nil {
		return nil, err
	}

	if typeId == literalTypeId {
		return decodeLiteral(cursor, uint8(version))
	}

	return decodeOperator(cursor, uint8(version), typeId)
}

// decodeLiteral reads 5-bit groups until one with a cleared continuation
// flag. The low 4 bits of each group are one nibble of the value, most
// significant nibble first.
func decodeLiteral(cursor *bitCursor, version uint8) (Packet, error) {
	var value uint64

	for {
		group, err := cursor.readBits(5)

		if err != nil {
			return nil, err
		}

		if value&0xF000000000000000 != 0 {
			return nil, &MalformedGroup{
				error: errors.New("literal value does not fit in 64 bits"),
			}
		}

		value = value<<4 | group&0x0F

		if group&0x10 == 0 {
			break
		}
	}

	return &Literal{
		Version: version,
		Value:   value,
	}, nil
}

func decodeOperator(cursor *bitCursor, version uint8, typeId uint64) (Packet, error) {
	op, err := operatorForTypeId(typeId)

	if err != nil {
		// Unreachable: type id is 3 bits and the literal tag is dispatched
		// before this branch.
		return nil, &MalformedGroup{error: err}
	}

	lengthTypeId, err := cursor.readBits(1)

	if err != nil {
		return nil, err
	}

	var children []Packet

	if lengthTypeId == 0 {
		totalLength, err := cursor.readBits(15)

		if err != nil {
			return nil, err
		}

		sub, err := cursor.takeSubrange(int(totalLength))

		if err != nil {
			return nil, err
		}

		// The declared bit length must divide exactly into whole
		// sub-packets.
		for sub.remainingBits() > 0 {
			child, err := decodePacket(sub)

			if err != nil {
				if _, ok := err.(*OutOfBounds); ok {
					return nil, &MalformedGroup{
						error: fmt.Errorf("sub-packet overruns its %d bit group: %v", totalLength, err),
					}
				}

				return nil, err
			}

			children = append(children, child)
		}
	} else {
		count, err := cursor.readBits(11)

		if err != nil {
			return nil, err
		}

		children = make([]Packet, count)

		for i := range children {
			child, err := decodePacket(cursor)

			if err != nil {
				return nil, err
			}

			children[i] = child
		}
	}

	if err := checkOperatorArity(op, len(children)); err != nil {
		return nil, err
	}

	return &Operator{
		Version:  version,
		Op:       op,
		Children: children,
	}, nil
}

// checkOperatorArity enforces the construction contract the evaluator
// relies on: comparisons take exactly two sub-packets, everything else at
// least one.
func checkOperatorArity(op OperatorKind, count int) error {
	switch op {
	case GreaterThan, LessThan, EqualTo:
		if count != 2 {
			return &MalformedGroup{
				error: fmt.Errorf("%s operator requires exactly 2 sub-packets, got %d", op, count),
			}
		}
	default:
		if count == 0 {
			return &MalformedGroup{
				error: fmt.Errorf("%s operator requires at least one sub-packet", op),
			}
		}
	}

	return nil
}
