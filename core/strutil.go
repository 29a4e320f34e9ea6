package core

// Itoa converts an integer to a string without using fmt package
func Itoa(n int) string {
	if n == 0 {
		return "0"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	if negative {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

const hexDigits = "0123456789ABCDEF"

// Hex32 formats v as 0x-prefixed, zero-padded hex
func Hex32(v uint32) string {
	var buf [10]byte
	buf[0] = '0'
	buf[1] = 'x'
	for i := 9; i >= 2; i-- {
		buf[i] = hexDigits[v&0xF]
		v >>= 4
	}
	return string(buf[:])
}
