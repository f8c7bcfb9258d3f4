package hashing

import (
	"math/big"
	"reflect"
)

// Hashable is implemented by values that compute their own hash. A type
// implementing Hashable should implement Equatable consistently.
type Hashable interface {
	Hash() int64
}

// maxSafeInteger is the largest integer every float64 represents exactly.
const maxSafeInteger = 1<<53 - 1

const (
	orderedSeed   = 1
	unorderedSeed = 0
)

var bigIntType = reflect.TypeOf(big.Int{})

// HashAny hashes _value_ structurally with DefaultHashFunction.
func HashAny(value any) int64 {
	return HashAnyWith(DefaultHashFunction(), value)
}

// HashAnyWith hashes _value_ structurally with _fn_.
//
// nil hashes to 0 and Hashable values are deferred to. Booleans, strings, byte
// slices and numbers use the matching one-shot method of _fn_; big integers and
// integers beyond the exactly representable range are first reduced to a
// signed 32-bit value. Slices and arrays combine element hashes in order with
// h = wrap32(h*31 + hashNumber(e)); maps, sets (map[K]struct{}) and structs
// combine entries with the order-independent h = wrap32(h + hashNumber(e)).
func HashAnyWith(fn HashFunction, value any) int64 {
	if value == nil {
		return 0
	}
	return hashValue(fn, reflect.ValueOf(value))
}

func hashValue(fn HashFunction, v reflect.Value) int64 {
	if !v.IsValid() || isNilReference(v) {
		return 0
	}
	if v.CanInterface() {
		if h, ok := v.Interface().(Hashable); ok {
			return h.Hash()
		}
	}
	switch v.Kind() {
	case reflect.Bool:
		return fn.HashBool(v.Bool()).AsNumber()
	case reflect.String:
		return fn.HashString(v.String()).AsNumber()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return hashInteger(fn, v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		if u > maxSafeInteger {
			return hashNumber(fn, int64(int32(uint32(u))))
		}
		return hashNumber(fn, int64(u))
	case reflect.Float32, reflect.Float64:
		return fn.HashNumber(v.Float()).AsNumber()
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		h := combineOrdered(fn, orderedSeed, fn.HashNumber(real(c)).AsNumber())
		return combineOrdered(fn, h, fn.HashNumber(imag(c)).AsNumber())
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return fn.HashBytes(byteContent(v)).AsNumber()
		}
		h := int64(orderedSeed)
		for i := 0; i < v.Len(); i++ {
			h = combineOrdered(fn, h, hashValue(fn, v.Index(i)))
		}
		return h
	case reflect.Map:
		return hashMap(fn, v)
	case reflect.Struct:
		if b, ok := bigIntOf(v); ok {
			return hashBigInt(fn, b)
		}
		return hashStruct(fn, v)
	case reflect.Pointer, reflect.Interface:
		return hashValue(fn, v.Elem())
	default:
		// channels, funcs and unsafe pointers carry no structure
		return 0
	}
}

func hashMap(fn HashFunction, v reflect.Value) int64 {
	isSet := v.Type().Elem().Size() == 0
	h := int64(unorderedSeed)
	iter := v.MapRange()
	for iter.Next() {
		key := hashValue(fn, iter.Key())
		if isSet {
			h = combineUnordered(fn, h, key)
			continue
		}
		entry := combineOrdered(fn, orderedSeed, key)
		entry = combineOrdered(fn, entry, hashValue(fn, iter.Value()))
		h = combineUnordered(fn, h, entry)
	}
	return h
}

func hashStruct(fn HashFunction, v reflect.Value) int64 {
	t := v.Type()
	h := int64(unorderedSeed)
	for i := 0; i < v.NumField(); i++ {
		entry := combineOrdered(fn, orderedSeed, fn.HashString(t.Field(i).Name).AsNumber())
		entry = combineOrdered(fn, entry, hashValue(fn, v.Field(i)))
		h = combineUnordered(fn, h, entry)
	}
	return h
}

func hashInteger(fn HashFunction, n int64) int64 {
	if n > maxSafeInteger || n < -maxSafeInteger {
		n = int64(int32(n))
	}
	return hashNumber(fn, n)
}

// hashBigInt reduces _b_ to its low 32 bits in two's complement.
func hashBigInt(fn HashFunction, b *big.Int) int64 {
	low := new(big.Int).And(b, big.NewInt(0xffffffff))
	return hashNumber(fn, int64(int32(uint32(low.Uint64()))))
}

func hashNumber(fn HashFunction, n int64) int64 {
	return fn.HashNumber(float64(n)).AsNumber()
}

func combineOrdered(fn HashFunction, h, element int64) int64 {
	return int64(int32(h*31 + hashNumber(fn, element)))
}

func combineUnordered(fn HashFunction, h, element int64) int64 {
	return int64(int32(h + hashNumber(fn, element)))
}

// bigIntOf extracts a big.Int held by value in _v_.
func bigIntOf(v reflect.Value) (*big.Int, bool) {
	if v.Type() != bigIntType || !v.CanInterface() {
		return nil, false
	}
	if v.CanAddr() {
		return v.Addr().Interface().(*big.Int), true
	}
	b := v.Interface().(big.Int)
	return &b, true
}

func byteContent(v reflect.Value) []byte {
	if v.Kind() == reflect.Slice {
		return v.Bytes()
	}
	b := make([]byte, v.Len())
	for i := range b {
		b[i] = byte(v.Index(i).Uint())
	}
	return b
}

func isNilReference(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	}
	return false
}
