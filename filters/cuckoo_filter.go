package filters

import (
	"errors"
	"fmt"

	"github.com/kwertop/approxset/hashing"
	"go.uber.org/zap"
)

const (
	defaultBucketSize = 10
	defaultMaxKicks   = 500
	// cuckooSalt is hashed along with the element to derive the second bucket index
	cuckooSalt = "cuckoo"
)

// RandomSource drives the eviction of a CuckooFilter. *rand.Rand satisfies it.
type RandomSource interface {
	// Intn returns a number in [0, n)
	Intn(n int) int
}

// CuckooFilterOptions configures a CuckooFilter. Zero values select the defaults.
// _BucketSize_ is the number of fingerprints a bucket holds, 10 by default
// _MaxKicks_ is the number of evictions tried before an insert fails, 500 by default
// _HashFunction_ maps elements to their fingerprint and first bucket, hashing.HashAny by default
// _FingerPrintSize_ truncates fingerprints modulo FingerPrintSize-1, 0 keeps them whole
// _Random_ picks eviction victims, a time seeded *rand.Rand by default
// _Logger_ receives failed inserts at debug level and bucket store errors at warn level
type CuckooFilterOptions[T any] struct {
	BucketSize      uint
	MaxKicks        uint
	HashFunction    Mapper[T]
	FingerPrintSize uint
	Random          RandomSource
	Logger          *zap.Logger
}

// CuckooFilter is an approximate set of fingerprints supporting deletion.
// _buckets_ is a slice of BucketStore, all of the same size
// _length_ represents the number of entries present in the Cuckoo Filter
// _err_ is the first error returned by a bucket store, if any
type CuckooFilter[T any] struct {
	buckets         []BucketStore
	length          uint
	bucketSize      uint
	maxKicks        uint
	fingerPrintSize uint
	hash            Mapper[T]
	random          RandomSource
	logger          *zap.Logger
	err             error
}

// NewCuckooFilter creates a new in-memory CuckooFilter of _numBuckets_ buckets.
// A zero _numBuckets_ is treated as 1.
func NewCuckooFilter[T any](numBuckets uint, opts CuckooFilterOptions[T]) *CuckooFilter[T] {
	numBuckets = max(numBuckets, 1)
	bucketSize := opts.BucketSize
	if bucketSize == 0 {
		bucketSize = defaultBucketSize
	}
	buckets := make([]BucketStore, numBuckets)
	for i := range buckets {
		buckets[i] = NewBucketMem(bucketSize)
	}
	return newCuckooFilter(buckets, bucketSize, 0, opts)
}

// NewCuckooFilterWithBuckets creates a CuckooFilter over existing _buckets_,
// either BucketMem or BucketRedis. The bucket size is that of the buckets and
// _opts.BucketSize_ is ignored. The length is read back from the buckets, so a
// filter attached to Redis buckets already in use starts with their entries.
func NewCuckooFilterWithBuckets[T any](buckets []BucketStore, opts CuckooFilterOptions[T]) (*CuckooFilter[T], error) {
	if len(buckets) == 0 || buckets[0] == nil {
		return nil, errors.New("filters: error initializing cuckoo filter as there are no buckets")
	}
	bucketSize := buckets[0].Size()
	if bucketSize == 0 {
		return nil, errors.New("filters: error initializing cuckoo filter as bucket size is 0")
	}
	length := uint(0)
	for i, bucket := range buckets {
		if bucket == nil || bucket.Size() != bucketSize {
			return nil, fmt.Errorf("filters: error initializing cuckoo filter as bucket %d doesn't have size %d", i, bucketSize)
		}
		n, err := bucket.Length()
		if err != nil {
			return nil, fmt.Errorf("filters: error initializing cuckoo filter: %w", err)
		}
		length += n
	}
	return newCuckooFilter(buckets, bucketSize, length, opts), nil
}

func newCuckooFilter[T any](buckets []BucketStore, bucketSize, length uint, opts CuckooFilterOptions[T]) *CuckooFilter[T] {
	maxKicks := opts.MaxKicks
	if maxKicks == 0 {
		maxKicks = defaultMaxKicks
	}
	hash := opts.HashFunction
	if hash == nil {
		hash = func(element T) int64 {
			return hashing.HashAny(element)
		}
	}
	var random RandomSource = opts.Random
	if random == nil {
		random = newTimeSeededRandom()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CuckooFilter[T]{
		buckets:         buckets,
		length:          length,
		bucketSize:      bucketSize,
		maxKicks:        maxKicks,
		fingerPrintSize: opts.FingerPrintSize,
		hash:            hash,
		random:          random,
		logger:          logger,
	}
}

// getPositions returns the fingerprint of _element_ and its two candidate buckets.
// The second index always goes through the structural hash so that it stays
// independent of a custom HashFunction.
func (cuckooFilter *CuckooFilter[T]) getPositions(element T) (int64, uint, uint) {
	hash := cuckooFilter.hash(element)
	numBuckets := uint(len(cuckooFilter.buckets))
	fIndex := slot(hash, numBuckets)
	sIndex := slot(hashing.HashAny([]any{element, cuckooSalt}), numBuckets)
	return cuckooFilter.fingerPrint(hash), fIndex, sIndex
}

func (cuckooFilter *CuckooFilter[T]) fingerPrint(hash int64) int64 {
	if cuckooFilter.fingerPrintSize == 0 {
		return hash
	}
	modulus := int64(cuckooFilter.fingerPrintSize - 1)
	if modulus == 0 {
		return 0
	}
	return hash % modulus
}

// Insert writes the fingerprint of _element_ in the Cuckoo Filter for future lookup.
// When both candidate buckets are full, random entries are evicted back and forth
// between them up to MaxKicks times. It returns false when no slot was found;
// evictions done until then are kept.
func (cuckooFilter *CuckooFilter[T]) Insert(element T) bool {
	fingerPrint, fIndex, sIndex := cuckooFilter.getPositions(element)
	for _, index := range []uint{fIndex, sIndex} {
		ok, err := cuckooFilter.buckets[index].Add(fingerPrint)
		if err != nil {
			cuckooFilter.fail("insert", err)
			return false
		}
		if ok {
			cuckooFilter.length++
			return true
		}
	}
	index := fIndex
	if cuckooFilter.random.Intn(2) == 1 {
		index = sIndex
	}
	currFingerPrint := fingerPrint
	for i := uint(0); i < cuckooFilter.maxKicks; i++ {
		randIndex := uint(cuckooFilter.random.Intn(int(cuckooFilter.bucketSize)))
		prevFingerPrint, occupied, err := cuckooFilter.buckets[index].Swap(randIndex, currFingerPrint)
		if err != nil {
			cuckooFilter.fail("insert", err)
			return false
		}
		if !occupied {
			cuckooFilter.length++
			return true
		}
		currFingerPrint = prevFingerPrint
		if index == fIndex {
			index = sIndex
		} else {
			index = fIndex
		}
	}
	cuckooFilter.logger.Debug("cuckoo filter insert failed",
		zap.Uint("maxKicks", cuckooFilter.maxKicks),
		zap.Uint("length", cuckooFilter.length),
		zap.Uint("capacity", cuckooFilter.Capacity()))
	return false
}

// Lookup returns true if the fingerprint of _element_ is present in one of its
// candidate buckets, else false
func (cuckooFilter *CuckooFilter[T]) Lookup(element T) bool {
	fingerPrint, fIndex, sIndex := cuckooFilter.getPositions(element)
	for _, index := range []uint{fIndex, sIndex} {
		ok, err := cuckooFilter.buckets[index].Lookup(fingerPrint)
		if err != nil {
			cuckooFilter.fail("lookup", err)
			return false
		}
		if ok {
			return true
		}
	}
	return false
}

// Delete removes one fingerprint of _element_, looking at the first bucket first
func (cuckooFilter *CuckooFilter[T]) Delete(element T) bool {
	fingerPrint, fIndex, sIndex := cuckooFilter.getPositions(element)
	for _, index := range []uint{fIndex, sIndex} {
		ok, err := cuckooFilter.buckets[index].Remove(fingerPrint)
		if err != nil {
			cuckooFilter.fail("delete", err)
			return false
		}
		if ok {
			cuckooFilter.length--
			return true
		}
	}
	return false
}

// Length returns the current number of entries present in the Cuckoo Filter
func (cuckooFilter *CuckooFilter[T]) Length() uint {
	return cuckooFilter.length
}

// NumBuckets returns the number of buckets
func (cuckooFilter *CuckooFilter[T]) NumBuckets() uint {
	return uint(len(cuckooFilter.buckets))
}

// BucketSize returns the number of slots per bucket
func (cuckooFilter *CuckooFilter[T]) BucketSize() uint {
	return cuckooFilter.bucketSize
}

// MaxKicks returns the number of evictions tried per insert
func (cuckooFilter *CuckooFilter[T]) MaxKicks() uint {
	return cuckooFilter.maxKicks
}

// FingerPrintSize returns the fingerprint truncation, 0 when untruncated
func (cuckooFilter *CuckooFilter[T]) FingerPrintSize() uint {
	return cuckooFilter.fingerPrintSize
}

// Capacity returns the total number of slots
func (cuckooFilter *CuckooFilter[T]) Capacity() uint {
	return uint(len(cuckooFilter.buckets)) * cuckooFilter.bucketSize
}

// LoadFactor returns the fraction of occupied slots
func (cuckooFilter *CuckooFilter[T]) LoadFactor() float64 {
	return float64(cuckooFilter.length) / float64(cuckooFilter.Capacity())
}

// Reset empties every bucket
func (cuckooFilter *CuckooFilter[T]) Reset() {
	for i := range cuckooFilter.buckets {
		if err := cuckooFilter.buckets[i].Clear(); err != nil {
			cuckooFilter.fail("reset", err)
		}
	}
	cuckooFilter.length = 0
}

// Err returns the first error reported by a bucket store, nil for BucketMem
func (cuckooFilter *CuckooFilter[T]) Err() error {
	return cuckooFilter.err
}

// Equals checks if two CuckooFilter hold the same fingerprints in the same slots
func (aFilter *CuckooFilter[T]) Equals(bFilter *CuckooFilter[T]) (bool, error) {
	if len(aFilter.buckets) != len(bFilter.buckets) ||
		aFilter.bucketSize != bFilter.bucketSize ||
		aFilter.length != bFilter.length {
		return false, nil
	}
	for i := range aFilter.buckets {
		ok, err := aFilter.buckets[i].Equals(bFilter.buckets[i])
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (cuckooFilter *CuckooFilter[T]) fail(op string, err error) {
	cuckooFilter.logger.Warn("cuckoo filter bucket error", zap.String("op", op), zap.Error(err))
	if cuckooFilter.err == nil {
		cuckooFilter.err = fmt.Errorf("filters: cuckoo filter %s: %w", op, err)
	}
}
