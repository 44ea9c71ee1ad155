package compose

//nolint:gochecknoglobals
var powersOfTen = [...]uint64{
	1,
	10,
	100,
	1000,
	10000,
	100000,
	1000000,
	10000000,
	100000000,
	1000000000,
	10000000000,
	100000000000,
	1000000000000,
	10000000000000,
	100000000000000,
	1000000000000000,
	10000000000000000,
	100000000000000000,
	1000000000000000000,
	10000000000000000000,
}

// digitCount returns the number of decimal digits in v by linear comparison
// against the power-of-ten table.
func digitCount(v uint64) int {
	count := 1
	for count < len(powersOfTen) && v >= powersOfTen[count] {
		count++
	}

	return count
}

// putLineNumber writes v in decimal, filling digits right to left.
func (c *Composer) putLineNumber(v uint64) {
	var digits [len(powersOfTen)]byte

	count := digitCount(v)
	for pos := count - 1; pos >= 0; pos-- {
		digits[pos] = byte('0' + v%10)
		v /= 10
	}

	c.putBytes(digits[:count])
}

func (c *Composer) putBytes(p []byte) {
	room := c.limit - c.n
	if len(p) > room {
		p = p[:room]
	}

	c.n += copy(c.buf[c.n:], p)
}
