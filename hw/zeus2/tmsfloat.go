package zeus2

import "math"

// FPToFloat converts a TMS320C3x single precision float to an IEEE-754
// float32. The DSP format has an 8-bit two's complement exponent in the top
// byte, then a sign bit and a 23-bit fraction with an implied most
// significant bit. An exponent of -128 encodes zero.
func FPToFloat(val uint32) float32 {
	mantissa := int32(val << 8)
	exponent := int32(int8(val >> 24))

	if exponent == -128 {
		return 0
	}

	var bits uint32
	if mantissa >= 0 {
		bits = uint32(exponent+127)<<23 + uint32(mantissa)>>8
	} else {
		man := uint32(-mantissa)
		bits = 0x80000000 + uint32(exponent+127)<<23 + (man>>8)&0xffffff
	}
	return math.Float32frombits(bits)
}
