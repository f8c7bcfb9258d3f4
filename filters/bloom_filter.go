package filters

import (
	"errors"
	"fmt"
	"math"

	"github.com/kwertop/approxset/hashing"
	"go.uber.org/zap"
)

// BloomHash is one explicit hash mapper of a BloomFilter. Either _Mapper_ is
// set and used unchanged, or _Function_ is set and elements are hashed with it
// through _Funnel_ (the filter-level funnel when nil, the structural
// hashing.HashAnyWith when both are nil).
type BloomHash[T any] struct {
	Mapper   Mapper[T]
	Function hashing.HashFunction
	Funnel   hashing.Funnel[T]
}

// BloomFilterOptions configures how a BloomFilter derives its hash mappers.
// _HashFunctions_ are the explicit mappers, in order.
// _Generate_ is the total number of mappers wanted; mappers missing from
// HashFunctions are derived by salting the default hash function.
// _Funnel_ feeds elements to generated mappers and to HashFunctions entries
// without a funnel of their own.
// _Logger_ receives bit store failures; zap.NewNop() when nil.
type BloomFilterOptions[T any] struct {
	HashFunctions []BloomHash[T]
	Generate      int
	Funnel        hashing.Funnel[T]
	Logger        *zap.Logger
}

// The BloomFilter data structure.
// _size_ denotes the number of bits of the filter
// _mappers_ are the hash mappers applied on the entrant element during
// insertion or lookup, there is always at least one
// _filter_ is the bitset backing the bloom filter. It can either be a type of
// BitSetMem (in-memory) or BitSetRedis (redis-backed)
// _count_ is the number of insertions, duplicates included
// _err_ is the first error returned by the bitset, if any
type BloomFilter[T any] struct {
	size    uint
	mappers []Mapper[T]
	filter  BitStore
	count   uint
	err     error
	logger  *zap.Logger
}

// NewBloomFilter creates an in-memory BloomFilter of _size_ bits.
// A zero _size_ is treated as 1.
func NewBloomFilter[T any](size uint, opts BloomFilterOptions[T]) *BloomFilter[T] {
	size = max(size, 1)
	return newBloomFilter(NewBitSetMem(size), opts)
}

// NewBloomFilterWithBitSet creates a BloomFilter over an existing bitset _filter_,
// either BitSetMem or BitSetRedis. The filter size is the size of the bitset.
func NewBloomFilterWithBitSet[T any](filter BitStore, opts BloomFilterOptions[T]) (*BloomFilter[T], error) {
	if filter == nil {
		return nil, errors.New("filters: error initializing bloom filter as bitset is nil")
	}
	if filter.Size() == 0 {
		return nil, errors.New("filters: error initializing bloom filter as bitset size is 0")
	}
	return newBloomFilter(filter, opts), nil
}

// NewBloomFilterWithEstimates creates an in-memory BloomFilter sized for _numItems_
// elements at the false positive rate _errorRate_. When _opts.Generate_ is 0 the
// optimal number of mappers is generated.
func NewBloomFilterWithEstimates[T any](numItems uint, errorRate float64, opts BloomFilterOptions[T]) (*BloomFilter[T], error) {
	if !(errorRate > 0 && errorRate < 1) {
		return nil, fmt.Errorf("filters: error rate %v should be in (0, 1)", errorRate)
	}
	numItems = max(numItems, 1)
	size := max(CalculateFilterSize(numItems, errorRate), 1)
	if opts.Generate == 0 {
		opts.Generate = int(max(CalculateNumHashes(size, numItems), 1))
	}
	return NewBloomFilter(size, opts), nil
}

func newBloomFilter[T any](filter BitStore, opts BloomFilterOptions[T]) *BloomFilter[T] {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BloomFilter[T]{
		size:    filter.Size(),
		mappers: deriveMappers(opts),
		filter:  filter,
		logger:  logger,
	}
}

func deriveMappers[T any](opts BloomFilterOptions[T]) []Mapper[T] {
	mappers := make([]Mapper[T], 0, max(len(opts.HashFunctions), opts.Generate, 1))
	for _, hash := range opts.HashFunctions {
		switch {
		case hash.Mapper != nil:
			mappers = append(mappers, hash.Mapper)
		case hash.Function != nil:
			funnel := hash.Funnel
			if funnel == nil {
				funnel = opts.Funnel
			}
			if funnel != nil {
				mappers = append(mappers, FunnelMapper(hash.Function, funnel))
			} else {
				mappers = append(mappers, GenericMapper[T](hash.Function))
			}
		}
	}
	for i := len(mappers); i < opts.Generate; i++ {
		mappers = append(mappers, saltedMapper(i, opts.Funnel))
	}
	if len(mappers) == 0 {
		mappers = append(mappers, Mapper[T](func(element T) int64 {
			return hashing.HashAny(element)
		}))
	}
	return mappers
}

func (bloomFilter *BloomFilter[T]) indexes(element T) []uint {
	indexes := make([]uint, len(bloomFilter.mappers))
	for i, mapper := range bloomFilter.mappers {
		indexes[i] = slot(mapper(element), bloomFilter.size)
	}
	return indexes
}

// Add sets the bits of _element_ for every mapper. The insertion
// counter grows on every call, duplicates included.
func (bloomFilter *BloomFilter[T]) Add(element T) {
	indexes := bloomFilter.indexes(element)
	if mem, ok := bloomFilter.filter.(*BitSetMem); ok {
		for _, index := range indexes {
			mem.set.Set(index)
		}
	} else if err := bloomFilter.filter.InsertMulti(indexes); err != nil {
		bloomFilter.fail("add", err)
	}
	bloomFilter.count++
}

// Contains returns true if every bit of _element_ is set, otherwise false.
// An empty filter answers false without touching the bitset.
func (bloomFilter *BloomFilter[T]) Contains(element T) bool {
	if bloomFilter.count == 0 {
		return false
	}
	indexes := bloomFilter.indexes(element)
	if mem, ok := bloomFilter.filter.(*BitSetMem); ok {
		for _, index := range indexes {
			if !mem.set.Test(index) {
				return false
			}
		}
		return true
	}
	has, err := bloomFilter.filter.HasMulti(indexes)
	if err != nil {
		bloomFilter.fail("contains", err)
		return false
	}
	for _, ok := range has {
		if !ok {
			return false
		}
	}
	return true
}

// Clear resets every bit and the insertion counter
func (bloomFilter *BloomFilter[T]) Clear() {
	if err := bloomFilter.filter.ClearAll(); err != nil {
		bloomFilter.fail("clear", err)
	}
	bloomFilter.count = 0
}

// Size returns the number of bits of the filter
func (bloomFilter *BloomFilter[T]) Size() uint {
	return bloomFilter.size
}

// Count returns the number of Add calls since creation or the last Clear
func (bloomFilter *BloomFilter[T]) Count() uint {
	return bloomFilter.count
}

// NumHashes returns the number of hash mappers used in the bloom filter
func (bloomFilter *BloomFilter[T]) NumHashes() uint {
	return uint(len(bloomFilter.mappers))
}

// BitSet returns the internal bitset
func (bloomFilter *BloomFilter[T]) BitSet() BitStore {
	return bloomFilter.filter
}

// SetBits returns the number of set bits
func (bloomFilter *BloomFilter[T]) SetBits() (uint, error) {
	return bloomFilter.filter.BitCount()
}

// PositiveRate estimates the current false positive rate of the filter
// from the fraction of set bits
func (bloomFilter *BloomFilter[T]) PositiveRate() (float64, error) {
	setBits, err := bloomFilter.filter.BitCount()
	if err != nil {
		return 0, err
	}
	fill := float64(setBits) / float64(bloomFilter.size)
	return math.Pow(fill, float64(len(bloomFilter.mappers))), nil
}

// Err returns the first error reported by the bitset, nil for BitSetMem
func (bloomFilter *BloomFilter[T]) Err() error {
	return bloomFilter.err
}

// Equals checks if two BloomFilter's have the same size, number of mappers and bits
func (aFilter *BloomFilter[T]) Equals(bFilter *BloomFilter[T]) (bool, error) {
	if aFilter.size != bFilter.size || len(aFilter.mappers) != len(bFilter.mappers) {
		return false, nil
	}
	return aFilter.filter.Equals(bFilter.filter)
}

func (bloomFilter *BloomFilter[T]) fail(op string, err error) {
	bloomFilter.logger.Warn("bloom filter bitset error", zap.String("op", op), zap.Error(err))
	if bloomFilter.err == nil {
		bloomFilter.err = fmt.Errorf("filters: bloom filter %s: %w", op, err)
	}
}
