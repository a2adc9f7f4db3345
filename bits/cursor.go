package bits

// bitCursor is an exclusive read position over an immutable bit sequence.
// The position only ever advances; end bounds the readable range so that a
// sub-cursor handed out by takeSubrange cannot read past its group.
type bitCursor struct {
	data []byte
	pos  int
	end  int
}

func newBitCursor(data []byte, bitLength int) *bitCursor {
	return &bitCursor{
		data: data,
		pos:  0,
		end:  bitLength,
	}
}

func (c *bitCursor) remainingBits() int {
	return c.end - c.pos
}

// readBits consumes the next n bits and returns them as an unsigned
// integer, most significant bit first. The position is unchanged on error.
func (c *bitCursor) readBits(n int) (uint64, error) {
	if c.remainingBits() < n {
		return 0, &OutOfBounds{
			Requested: n,
			Remaining: c.remainingBits(),
		}
	}

	var value uint64

	for i := 0; i < n; i++ {
		bit := c.data[c.pos/8] >> (7 - uint(c.pos%8)) & 1
		value = value<<1 | uint64(bit)
		c.pos++
	}

	return value, nil
}

// takeSubrange splits off an independent cursor over exactly the next n
// bits and advances this cursor past them.
func (c *bitCursor) takeSubrange(n int) (*bitCursor, error) {
	if c.remainingBits() < n {
		return nil, &OutOfBounds{
			Requested: n,
			Remaining: c.remainingBits(),
		}
	}

	sub := &bitCursor{
		data: c.data,
		pos:  c.pos,
		end:  c.pos + n,
	}

	c.pos += n

	return sub, nil
}
