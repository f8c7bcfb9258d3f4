package filters

// BitStore is the bit array behind a BloomFilter. BitSetMem keeps the bits in
// memory, BitSetRedis in a Redis bitmap that can be shared between processes.
type BitStore interface {
	// Size returns the number of bits in the bitset
	Size() uint

	// Has returns true if the bit is set at index, else false
	Has(index uint) (bool, error)

	// HasMulti returns an array of boolean values for the queried
	// index values in the indexes array
	HasMulti(indexes []uint) ([]bool, error)

	// Insert sets the bit at index to true
	Insert(index uint) error

	// InsertMulti sets the bits at the indices passed in the indexes array
	InsertMulti(indexes []uint) error

	// ClearAll resets every bit to false
	ClearAll() error

	// BitCount returns the total number of set bits in the bitset
	BitCount() (uint, error)

	// Equals checks if two bitsets hold the same bits
	Equals(other BitStore) (bool, error)
}

// IsBitSetMem is used to check if the passed variable `t`
// is of type *BitSetMem or not
func IsBitSetMem(t interface{}) bool {
	switch t.(type) {
	case *BitSetMem:
		return true
	default:
		return false
	}
}
