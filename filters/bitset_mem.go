package filters

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// BitSetMem is the in-memory implementation of BitStore.
// _size_ is the number of bits in the bitset
// _set_ is the bitset implementation adopted from https://github.com/bits-and-blooms/bitset
type BitSetMem struct {
	set  *bitset.BitSet
	size uint
}

// NewBitSetMem creates a new BitSetMem of size _size_
func NewBitSetMem(size uint) *BitSetMem {
	return &BitSetMem{bitset.New(size), size}
}

// Size returns the size of the bitset
func (bitSet *BitSetMem) Size() uint {
	return bitSet.size
}

// Has checks if the bit at index _index_ is set
func (bitSet *BitSetMem) Has(index uint) (bool, error) {
	return bitSet.set.Test(index), nil
}

// HasMulti checks if the bit at the indices
// specified by _indexes_ array is set
func (bitSet *BitSetMem) HasMulti(indexes []uint) ([]bool, error) {
	result := make([]bool, len(indexes))
	for i, index := range indexes {
		result[i] = bitSet.set.Test(index)
	}
	return result, nil
}

// Insert sets the bit at index specified by _index_
func (bitSet *BitSetMem) Insert(index uint) error {
	bitSet.set.Set(index)
	return nil
}

// InsertMulti sets the bits at the indices specified by _indexes_
func (bitSet *BitSetMem) InsertMulti(indexes []uint) error {
	for _, index := range indexes {
		bitSet.set.Set(index)
	}
	return nil
}

// ClearAll resets all the bits of the bitset
func (bitSet *BitSetMem) ClearAll() error {
	bitSet.set.ClearAll()
	return nil
}

// BitCount returns the total number of set bits in the bitset
func (bitSet *BitSetMem) BitCount() (uint, error) {
	return bitSet.set.Count(), nil
}

// Equals checks if two BitSetMem are equal or not
func (bitSet *BitSetMem) Equals(other BitStore) (bool, error) {
	otherSet, ok := other.(*BitSetMem)
	if !ok {
		return false, fmt.Errorf("filters: invalid bitset type %T, should be *BitSetMem", other)
	}
	return bitSet.size == otherSet.size && bitSet.set.Equal(otherSet.set), nil
}
