package filters

import "fmt"

// BucketStore holds the fingerprints of one cuckoo filter bucket: a fixed
// number of slots, each either empty or holding a fingerprint. Fingerprint 0
// is a valid value. BucketMem keeps the slots in memory, BucketRedis in a
// Redis list that can be shared between processes.
type BucketStore interface {
	// Size returns the number of slots of the bucket
	Size() uint

	// Length returns the number of occupied slots
	Length() (uint, error)

	// IsFree returns true if there is room for more entries in the bucket
	IsFree() (bool, error)

	// Add stores _fingerPrint_ at the first empty slot, false when full
	Add(fingerPrint int64) (bool, error)

	// Lookup returns true if _fingerPrint_ is present in the bucket
	Lookup(fingerPrint int64) (bool, error)

	// Remove empties the first slot holding _fingerPrint_
	Remove(fingerPrint int64) (bool, error)

	// Swap stores _fingerPrint_ at _index_ and returns what was stored there;
	// _occupied_ is false when the slot was empty
	Swap(index uint, fingerPrint int64) (prev int64, occupied bool, err error)

	// Clear empties every slot
	Clear() error

	// Equals checks if two buckets hold the same fingerprints in the same slots
	Equals(other BucketStore) (bool, error)
}

// entry is one slot of a BucketMem. Emptiness is tracked in _occupied_.
type entry struct {
	fingerPrint int64
	occupied    bool
}

// BucketMem is the in-memory implementation of BucketStore.
// _entries_ holds the slots
// _length_ is used to track the number of occupied entries in the bucket
type BucketMem struct {
	entries []entry
	length  uint
}

// NewBucketMem creates a new BucketMem of _size_ slots
func NewBucketMem(size uint) *BucketMem {
	return &BucketMem{entries: make([]entry, size)}
}

// Size returns the number of slots of the bucket
func (bucket *BucketMem) Size() uint {
	return uint(len(bucket.entries))
}

// Length returns the number of occupied slots
func (bucket *BucketMem) Length() (uint, error) {
	return bucket.length, nil
}

// IsFree returns true if there is room for more entries in the bucket,
// otherwise false.
func (bucket *BucketMem) IsFree() (bool, error) {
	return bucket.length < bucket.Size(), nil
}

func (bucket *BucketMem) indexOf(fingerPrint int64) int {
	for i, e := range bucket.entries {
		if e.occupied && e.fingerPrint == fingerPrint {
			return i
		}
	}
	return -1
}

// Add stores _fingerPrint_ at the first empty slot
func (bucket *BucketMem) Add(fingerPrint int64) (bool, error) {
	if bucket.length >= bucket.Size() {
		return false, nil
	}
	for i := range bucket.entries {
		if !bucket.entries[i].occupied {
			bucket.entries[i] = entry{fingerPrint, true}
			bucket.length++
			return true, nil
		}
	}
	return false, nil
}

// Lookup returns true if _fingerPrint_ is present in the bucket, otherwise false
func (bucket *BucketMem) Lookup(fingerPrint int64) (bool, error) {
	return bucket.indexOf(fingerPrint) > -1, nil
}

// Remove empties the first slot holding _fingerPrint_
func (bucket *BucketMem) Remove(fingerPrint int64) (bool, error) {
	index := bucket.indexOf(fingerPrint)
	if index < 0 {
		return false, nil
	}
	bucket.entries[index] = entry{}
	bucket.length--
	return true, nil
}

// Swap stores _fingerPrint_ at _index_ and returns the entry previously stored there
func (bucket *BucketMem) Swap(index uint, fingerPrint int64) (int64, bool, error) {
	if index >= bucket.Size() {
		return 0, false, fmt.Errorf("filters: slot %d out of range for bucket of size %d", index, bucket.Size())
	}
	prev := bucket.entries[index]
	bucket.entries[index] = entry{fingerPrint, true}
	if !prev.occupied {
		bucket.length++
	}
	return prev.fingerPrint, prev.occupied, nil
}

// Clear empties every slot
func (bucket *BucketMem) Clear() error {
	for i := range bucket.entries {
		bucket.entries[i] = entry{}
	}
	bucket.length = 0
	return nil
}

// Equals checks if two BucketMem hold the same entries in the same slots
func (bucket *BucketMem) Equals(other BucketStore) (bool, error) {
	otherBucket, ok := other.(*BucketMem)
	if !ok {
		return false, fmt.Errorf("filters: invalid bucket type %T, should be *BucketMem", other)
	}
	if bucket.Size() != otherBucket.Size() || bucket.length != otherBucket.length {
		return false, nil
	}
	for index, e := range bucket.entries {
		if otherBucket.entries[index] != e {
			return false, nil
		}
	}
	return true, nil
}
