package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitSetMem(t *testing.T) {
	bitSet := NewBitSetMem(16)
	assert.Equal(t, uint(16), bitSet.Size())
	require.NoError(t, bitSet.Insert(1))
	require.NoError(t, bitSet.InsertMulti([]uint{3, 7, 3}))

	ok, err := bitSet.Has(3)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = bitSet.Has(4)
	require.NoError(t, err)
	assert.False(t, ok)

	has, err := bitSet.HasMulti([]uint{1, 2, 7})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, has)

	count, err := bitSet.BitCount()
	require.NoError(t, err)
	assert.Equal(t, uint(3), count)

	require.NoError(t, bitSet.ClearAll())
	count, err = bitSet.BitCount()
	require.NoError(t, err)
	assert.Equal(t, uint(0), count)
}

func TestBitSetMemEquals(t *testing.T) {
	aSet, bSet := NewBitSetMem(8), NewBitSetMem(8)
	require.NoError(t, aSet.InsertMulti([]uint{1, 5}))
	require.NoError(t, bSet.InsertMulti([]uint{5, 1}))
	ok, err := aSet.Equals(bSet)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, bSet.Insert(2))
	ok, err = aSet.Equals(bSet)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = aSet.Equals(NewBitSetMem(16))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = aSet.Equals(&BitSetRedis{})
	assert.Error(t, err)

	assert.True(t, IsBitSetMem(aSet))
	assert.False(t, IsBitSetMem(&BitSetRedis{}))
}
