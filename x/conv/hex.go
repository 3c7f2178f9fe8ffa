package conv

const hexdigits = "0123456789ABCDEF"

// Hex16 renders v as a fixed-width "0xNNNN" string without fmt.
func Hex16(v uint16) string {
	var b [6]byte
	b[0], b[1] = '0', 'x'
	for i := 0; i < 4; i++ {
		b[5-i] = hexdigits[v&0xF]
		v >>= 4
	}
	return string(b[:])
}

// Hex8 renders v as "0xNN".
func Hex8(v uint8) string {
	var b [4]byte
	b[0], b[1] = '0', 'x'
	b[2] = hexdigits[v>>4]
	b[3] = hexdigits[v&0xF]
	return string(b[:])
}
