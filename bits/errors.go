package bits

import "fmt"

type OutOfBounds struct {
	Requested int
	Remaining int
}

func (o *OutOfBounds) Error() string {
	return fmt.Sprintf("read of %d bits with only %d bits remaining", o.Requested, o.Remaining)
}

type MalformedGroup struct {
	error error
}

func (m *MalformedGroup) Error() string {
	return fmt.Sprintf("malformed packet group: %v", m.error)
}

type InvalidTransmission struct {
	error error
}

func (i *InvalidTransmission) Error() string {
	return fmt.Sprintf("invalid transmission: %v", i.error)
}
