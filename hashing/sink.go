package hashing

import (
	"encoding/binary"
	"math"
)

// PrimitiveSink is an ordered, write-only accumulator of primitive values.
// The order of writes is significant: identical write sequences always produce
// identical hash output downstream.
type PrimitiveSink interface {
	PutNumber(n float64) PrimitiveSink
	PutBytes(p []byte) PrimitiveSink
	PutBool(b bool) PrimitiveSink
	PutString(s string) PrimitiveSink
}

// Funnel decomposes a value of type T into primitive writes against _sink_.
// A funnel must be pure and write fields in the same order for structurally
// equal inputs.
type Funnel[T any] func(value T, sink PrimitiveSink)

// PutObject feeds _value_ into _sink_ through _funnel_ and returns the sink.
func PutObject[T any](sink PrimitiveSink, value T, funnel Funnel[T]) PrimitiveSink {
	funnel(value, sink)
	return sink
}

// numberWidth returns how many bytes encodeNumber writes for n.
func numberWidth(n float64) int {
	if n == math.Trunc(n) && n >= math.MinInt32 && n <= math.MaxInt32 {
		return 4
	}
	return 8
}

// encodeNumber writes n into buf and returns the written prefix.
// Integral values inside the int32 range use 4 big-endian bytes of the int32,
// everything else (fractions, large magnitudes, NaN, infinities) the 8
// big-endian bytes of the float64 bits. Every NaN is written as the same
// canonical NaN.
func encodeNumber(buf *[8]byte, n float64) []byte {
	if numberWidth(n) == 4 {
		binary.BigEndian.PutUint32(buf[:4], uint32(int32(n)))
		return buf[:4]
	}
	if math.IsNaN(n) {
		n = math.NaN()
	}
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(n))
	return buf[:]
}
