package filters

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// BitSetRedis is the Redis backed implementation of BitStore.
// _size_ is the number of bits in the bitset
// _key_ is the redis key to the bitmap holding the bits.
// All bit operations are done on the string stored at _key_.
// For more details, please refer https://redis.io/docs/data-types/bitmaps/
type BitSetRedis struct {
	client *redis.Client
	size   uint
	key    string
}

// NewBitSetRedis creates a new BitSetRedis of size _size_ at a generated key
func NewBitSetRedis(client *redis.Client, size uint) (*BitSetRedis, error) {
	bitSet := &BitSetRedis{client, size, generateRandomString(16)}
	if size > 0 {
		// allocate the whole bitmap up front
		err := client.SetBit(context.Background(), bitSet.key, int64(size-1), 0).Err()
		if err != nil {
			return nil, fmt.Errorf("filters: error while creating bitset redis: %w", err)
		}
	}
	return bitSet, nil
}

// NewBitSetRedisFromKey attaches to the existing bitmap saved at redis key _key_
func NewBitSetRedisFromKey(client *redis.Client, key string, size uint) *BitSetRedis {
	return &BitSetRedis{client, size, key}
}

// Size returns the size of the bitset saved in redis
func (bitSet *BitSetRedis) Size() uint {
	return bitSet.size
}

// Key gives the key at which the bitset is saved in redis
func (bitSet *BitSetRedis) Key() string {
	return bitSet.key
}

// Has checks if the bit at index _index_ is set
func (bitSet *BitSetRedis) Has(index uint) (bool, error) {
	val, err := bitSet.client.GetBit(context.Background(), bitSet.key, int64(index)).Result()
	if err != nil {
		return false, fmt.Errorf("filters: error while reading bit %d: %w", index, err)
	}
	return val != 0, nil
}

// HasMulti checks if the bit at the indices
// specified by _indexes_ array is set
func (bitSet *BitSetRedis) HasMulti(indexes []uint) ([]bool, error) {
	if len(indexes) == 0 {
		return nil, nil
	}
	ctx := context.Background()
	pipe := bitSet.client.Pipeline()
	values := make([]*redis.IntCmd, len(indexes))
	for i := range indexes {
		values[i] = pipe.GetBit(ctx, bitSet.key, int64(indexes[i]))
	}
	_, err := pipe.Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("filters: error while reading bits: %w", err)
	}
	result := make([]bool, len(values))
	for i := range values {
		result[i] = values[i].Val() != 0
	}
	return result, nil
}

// Insert sets the bit at index specified by _index_
func (bitSet *BitSetRedis) Insert(index uint) error {
	err := bitSet.client.SetBit(context.Background(), bitSet.key, int64(index), 1).Err()
	if err != nil {
		return fmt.Errorf("filters: error while setting bit %d: %w", index, err)
	}
	return nil
}

// InsertMulti sets the bits at indices specified by array _indexes_
func (bitSet *BitSetRedis) InsertMulti(indexes []uint) error {
	if len(indexes) == 0 {
		return nil
	}
	ctx := context.Background()
	pipe := bitSet.client.Pipeline()
	for i := range indexes {
		pipe.SetBit(ctx, bitSet.key, int64(indexes[i]), 1)
	}
	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("filters: error while setting bits: %w", err)
	}
	return nil
}

// ClearAll deletes the bitmap; missing bits read as zero
func (bitSet *BitSetRedis) ClearAll() error {
	err := bitSet.client.Del(context.Background(), bitSet.key).Err()
	if err != nil {
		return fmt.Errorf("filters: error while clearing bitset redis: %w", err)
	}
	return nil
}

// BitCount returns the total number of set bits in the bitset saved in redis
func (bitSet *BitSetRedis) BitCount() (uint, error) {
	bitRange := &redis.BitCount{Start: 0, End: -1}
	val, err := bitSet.client.BitCount(context.Background(), bitSet.key, bitRange).Result()
	if err != nil {
		return 0, fmt.Errorf("filters: error while counting bits: %w", err)
	}
	return uint(val), nil
}

// Equals checks if two BitSetRedis hold the same bitmap
func (bitSet *BitSetRedis) Equals(other BitStore) (bool, error) {
	otherSet, ok := other.(*BitSetRedis)
	if !ok {
		return false, fmt.Errorf("filters: invalid bitset type %T, should be *BitSetRedis", other)
	}
	if bitSet.size != otherSet.size {
		return false, nil
	}
	aSetVal, err := bitSet.value()
	if err != nil {
		return false, err
	}
	bSetVal, err := otherSet.value()
	if err != nil {
		return false, err
	}
	return aSetVal == bSetVal, nil
}

func (bitSet *BitSetRedis) value() (string, error) {
	val, err := bitSet.client.Get(context.Background(), bitSet.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("filters: error while reading bitset redis: %w", err)
	}
	return val, nil
}
