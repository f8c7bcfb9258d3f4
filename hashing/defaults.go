package hashing

// Shared, stateless hash functions.
var (
	Cyrb53  = NewCyrb53(0)
	FNV1a32 = NewFNV1a32()
	Murmur3 = NewMurmur3(0)
)

// DefaultHashFunction returns the algorithm behind HashAny and the salted
// mappers of the Bloom filter.
func DefaultHashFunction() HashFunction {
	return Cyrb53
}
