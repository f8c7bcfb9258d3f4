package filters

import "github.com/kwertop/approxset/hashing"

// Mapper maps an element to an integer hash. Mappers must be pure and
// deterministic; the filters rely on that for the absence of false negatives.
type Mapper[T any] func(element T) int64

// FunnelMapper hashes elements through _funnel_ with the hash function _fn_.
func FunnelMapper[T any](fn hashing.HashFunction, funnel hashing.Funnel[T]) Mapper[T] {
	return func(element T) int64 {
		return hashing.HashObject(fn, element, funnel).AsNumber()
	}
}

// GenericMapper hashes elements structurally with hashing.HashAnyWith and _fn_.
func GenericMapper[T any](fn hashing.HashFunction) Mapper[T] {
	return func(element T) int64 {
		return hashing.HashAnyWith(fn, element)
	}
}

// saltedMapper derives one of several independent mappers from the default
// hash function by feeding _index_ after the element.
func saltedMapper[T any](index int, funnel hashing.Funnel[T]) Mapper[T] {
	fn := hashing.DefaultHashFunction()
	return func(element T) int64 {
		h := fn.NewHasher()
		if funnel != nil {
			funnel(element, h)
		} else {
			h.PutNumber(float64(hashing.HashAny(element)))
		}
		h.PutNumber(float64(index))
		return h.Hash().AsNumber()
	}
}

// slot maps a possibly negative hash into [0, size).
func slot(hash int64, size uint) uint {
	n := int64(size)
	return uint(((hash % n) + n) % n)
}
