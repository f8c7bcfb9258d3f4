package filters

import (
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kwertop/approxset/hashing"
)

type point struct {
	X, Y int
}

func pointFunnel(p point, sink hashing.PrimitiveSink) {
	sink.PutNumber(float64(p.X)).PutNumber(float64(p.Y))
}

func TestBloomFilterNoFalseNegatives(t *testing.T) {
	filter := NewBloomFilter(1000, BloomFilterOptions[string]{Generate: 4})
	for i := 0; i < 100; i++ {
		filter.Add("item-" + strconv.Itoa(i))
	}
	for i := 0; i < 100; i++ {
		assert.True(t, filter.Contains("item-"+strconv.Itoa(i)), "item-%d should be present", i)
	}
	assert.Equal(t, uint(100), filter.Count())
	assert.Equal(t, uint(4), filter.NumHashes())
	assert.Equal(t, uint(1000), filter.Size())
	assert.NoError(t, filter.Err())
}

func TestBloomFilterEmpty(t *testing.T) {
	filter := NewBloomFilter(1, BloomFilterOptions[string]{})
	assert.False(t, filter.Contains("a"), "empty filter should be false for \"a\"")

	filter.Add("a")
	assert.True(t, filter.Contains("a"))

	filter.Clear()
	assert.False(t, filter.Contains("a"), "cleared filter should be false for \"a\"")
	assert.Equal(t, uint(0), filter.Count(), "count should be 0 after clear")
	setBits, err := filter.SetBits()
	require.NoError(t, err)
	assert.Equal(t, uint(0), setBits)
}

func TestBloomFilterCountsDuplicates(t *testing.T) {
	filter := NewBloomFilter(64, BloomFilterOptions[int]{})
	filter.Add(7)
	filter.Add(7)
	filter.Add(7)
	assert.Equal(t, uint(3), filter.Count(), "count should be 3 with duplicates")
}

func TestBloomFilterZeroSize(t *testing.T) {
	filter := NewBloomFilter(0, BloomFilterOptions[string]{Generate: 3})
	assert.Equal(t, uint(1), filter.Size(), "size 0 should be clamped to 1")

	filter.Add("a")
	assert.True(t, filter.Contains("a"))
	// every element maps to the only bit
	assert.True(t, filter.Contains("b"))
}

func TestBloomFilterDefaultMapper(t *testing.T) {
	filter := NewBloomFilter(128, BloomFilterOptions[string]{})
	assert.Equal(t, uint(1), filter.NumHashes())

	filter.Add("a")
	has, err := filter.BitSet().Has(slot(hashing.HashAny("a"), 128))
	require.NoError(t, err)
	assert.True(t, has)
}

func TestBloomFilterExplicitMappers(t *testing.T) {
	filter := NewBloomFilter(10, BloomFilterOptions[string]{
		HashFunctions: []BloomHash[string]{
			{Mapper: func(s string) int64 { return int64(len(s)) }},
			{Mapper: func(string) int64 { return -3 }},
		},
		Generate: 1,
	})
	assert.Equal(t, uint(2), filter.NumHashes())

	filter.Add("abc")
	for index, want := range map[uint]bool{3: true, 7: true, 0: false, 2: false} {
		has, err := filter.BitSet().Has(index)
		require.NoError(t, err)
		assert.Equal(t, want, has, "bit %d should be %v", index, want)
	}
	setBits, err := filter.SetBits()
	require.NoError(t, err)
	assert.Equal(t, uint(2), setBits)

	assert.True(t, filter.Contains("xyz"))
	assert.False(t, filter.Contains("ab"))
}

func TestBloomFilterGeneratedMappers(t *testing.T) {
	opts := BloomFilterOptions[string]{
		HashFunctions: []BloomHash[string]{{Function: hashing.FNV1a32}},
		Generate:      5,
	}
	aFilter := NewBloomFilter(512, opts)
	bFilter := NewBloomFilter(512, opts)
	assert.Equal(t, uint(5), aFilter.NumHashes())

	for _, s := range []string{"alpha", "beta", "gamma"} {
		aFilter.Add(s)
		bFilter.Add(s)
	}
	ok, err := aFilter.Equals(bFilter)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.NotEqual(t, saltedMapper[string](1, nil)("alpha"), saltedMapper[string](2, nil)("alpha"))
}

func TestBloomFilterFunnel(t *testing.T) {
	filter := NewBloomFilter(256, BloomFilterOptions[point]{
		HashFunctions: []BloomHash[point]{
			{Function: hashing.Murmur3},
			{Function: hashing.FNV1a32, Funnel: func(p point, sink hashing.PrimitiveSink) {
				sink.PutNumber(float64(p.Y))
			}},
		},
		Funnel: pointFunnel,
	})
	filter.Add(point{1, 2})
	assert.True(t, filter.Contains(point{1, 2}))

	index := slot(hashing.HashObject(hashing.Murmur3, point{1, 2}, pointFunnel).AsNumber(), 256)
	has, err := filter.BitSet().Has(index)
	require.NoError(t, err)
	assert.True(t, has)

	// the second mapper only sees Y
	index = slot(hashing.FNV1a32.HashNumber(2).AsNumber(), 256)
	has, err = filter.BitSet().Has(index)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestBloomFilterWithEstimates(t *testing.T) {
	filter, err := NewBloomFilterWithEstimates(1000, 0.01, BloomFilterOptions[int]{})
	require.NoError(t, err)
	assert.Equal(t, uint(9586), filter.Size())
	assert.Equal(t, uint(7), filter.NumHashes())

	rate, err := filter.PositiveRate()
	require.NoError(t, err)
	assert.Zero(t, rate)

	for i := 0; i < 1000; i++ {
		filter.Add(i)
	}
	rate, err = filter.PositiveRate()
	require.NoError(t, err)
	assert.Greater(t, rate, 0.0)
	assert.Less(t, rate, 0.05)

	falsePositives := 0
	for i := 1000; i < 11000; i++ {
		if filter.Contains(i) {
			falsePositives++
		}
	}
	assert.Less(t, falsePositives, 500)

	_, err = NewBloomFilterWithEstimates(10, 0, BloomFilterOptions[int]{})
	assert.Error(t, err)
	_, err = NewBloomFilterWithEstimates(10, 1, BloomFilterOptions[int]{})
	assert.Error(t, err)

	filter, err = NewBloomFilterWithEstimates(100, 0.05, BloomFilterOptions[int]{Generate: 2})
	require.NoError(t, err)
	assert.Equal(t, uint(624), filter.Size())
	assert.Equal(t, uint(2), filter.NumHashes())
}

func TestBloomFilterWithBitSetRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := newTestRedisClient(t, mr)
	store, err := NewBitSetRedis(client, 512)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.WarnLevel)
	filter, err := NewBloomFilterWithBitSet(store, BloomFilterOptions[string]{
		Generate: 3,
		Logger:   zap.New(core),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(512), filter.Size())

	filter.Add("a")
	filter.Add("b")
	assert.True(t, filter.Contains("a"))
	assert.True(t, filter.Contains("b"))
	assert.NoError(t, filter.Err())

	memFilter := NewBloomFilter(512, BloomFilterOptions[string]{Generate: 3})
	memFilter.Add("a")
	memFilter.Add("b")
	redisBits, err := filter.SetBits()
	require.NoError(t, err)
	memBits, err := memFilter.SetBits()
	require.NoError(t, err)
	assert.Equal(t, memBits, redisBits)

	filter.Clear()
	assert.False(t, filter.Contains("a"))
	assert.NoError(t, filter.Err())

	mr.Close()
	filter.Add("c")
	assert.Error(t, filter.Err())
	assert.NotZero(t, logs.FilterMessage("bloom filter bitset error").Len())
}

func TestNewBloomFilterWithBitSetErrors(t *testing.T) {
	_, err := NewBloomFilterWithBitSet[string](nil, BloomFilterOptions[string]{})
	assert.Error(t, err)
	_, err = NewBloomFilterWithBitSet[string](NewBitSetMem(0), BloomFilterOptions[string]{})
	assert.Error(t, err)
}
