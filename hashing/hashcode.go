package hashing

import (
	"encoding/binary"
	"encoding/hex"
)

// HashCode is the immutable result of a hash computation.
type HashCode struct {
	bits  int
	value uint64
}

func newHashCode(bits int, value uint64) HashCode {
	if bits < 64 {
		value &= 1<<uint(bits) - 1
	}
	return HashCode{bits: bits, value: value}
}

// Bits returns the width of the code in bits
func (code HashCode) Bits() int {
	return code.bits
}

// AsNumber returns the code as an integer. Codes of up to 53 bits are always
// non-negative; 64-bit codes reinterpret the unsigned value as int64.
func (code HashCode) AsNumber() int64 {
	return int64(code.value)
}

// Uint64 returns the unsigned value of the code
func (code HashCode) Uint64() uint64 {
	return code.value
}

// Bytes returns the big-endian representation of the code: 4 bytes for codes
// of up to 32 bits, 8 bytes otherwise.
func (code HashCode) Bytes() []byte {
	if code.bits <= 32 {
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, uint32(code.value))
		return b
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, code.value)
	return b
}

func (code HashCode) String() string {
	return hex.EncodeToString(code.Bytes())
}
