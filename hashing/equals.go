package hashing

import (
	"math"
	"reflect"
)

// Equatable is implemented by values that decide their own equality. Equals
// is only called with an argument of the receiver's dynamic type.
type Equatable interface {
	Equals(other any) bool
}

// EqualsAny reports whether _x_ and _y_ are structurally equal.
//
// Identical values are equal, the same map, slice or function included.
// Values of different dynamic types are not, and Equatable values are
// deferred to. Otherwise slices and arrays are compared
// element by element, maps entry by entry regardless of iteration order, and
// structs field by field. Floats are equal when == holds or both are NaN.
func EqualsAny(x, y any) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	return equalValues(reflect.ValueOf(x), reflect.ValueOf(y))
}

func equalValues(x, y reflect.Value) bool {
	if !x.IsValid() || !y.IsValid() {
		return x.IsValid() == y.IsValid()
	}
	if x.Type() != y.Type() {
		return false
	}
	if x.Comparable() && y.Comparable() && x.Equal(y) {
		return true
	}
	if sameReference(x, y) {
		return true
	}
	if x.CanInterface() && y.CanInterface() && !isNilReference(x) {
		if e, ok := x.Interface().(Equatable); ok {
			return e.Equals(y.Interface())
		}
	}
	switch x.Kind() {
	case reflect.Float32, reflect.Float64:
		return equalFloats(x.Float(), y.Float())
	case reflect.Complex64, reflect.Complex128:
		cx, cy := x.Complex(), y.Complex()
		return equalFloats(real(cx), real(cy)) && equalFloats(imag(cx), imag(cy))
	case reflect.Slice, reflect.Array:
		if x.Len() != y.Len() {
			return false
		}
		for i := 0; i < x.Len(); i++ {
			if !equalValues(x.Index(i), y.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Map:
		if x.Len() != y.Len() {
			return false
		}
		iter := x.MapRange()
		for iter.Next() {
			other := y.MapIndex(iter.Key())
			if !other.IsValid() || !equalValues(iter.Value(), other) {
				return false
			}
		}
		return true
	case reflect.Struct:
		if bx, ok := bigIntOf(x); ok {
			if by, ok := bigIntOf(y); ok {
				return bx.Cmp(by) == 0
			}
		}
		for i := 0; i < x.NumField(); i++ {
			if !equalValues(x.Field(i), y.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Pointer, reflect.Interface:
		if x.IsNil() || y.IsNil() {
			return x.IsNil() && y.IsNil()
		}
		return equalValues(x.Elem(), y.Elem())
	case reflect.Func:
		return x.IsNil() && y.IsNil()
	default:
		// every remaining kind is comparable and already failed ==
		return false
	}
}

// sameReference reports whether two values of the same type share their
// backing map, function or slice window, the identity == cannot express.
func sameReference(x, y reflect.Value) bool {
	switch x.Kind() {
	case reflect.Map, reflect.Func:
		return x.UnsafePointer() == y.UnsafePointer()
	case reflect.Slice:
		return x.UnsafePointer() == y.UnsafePointer() && x.Len() == y.Len()
	default:
		return false
	}
}

func equalFloats(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}
