package filters

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// BucketRedis is the Redis backed implementation of BucketStore.
// The slots are a Redis list of _size_ strings at _key_; an empty string
// is an empty slot, any other value is a fingerprint in decimal.
// Lua scripts keep the read-then-write operations atomic.
type BucketRedis struct {
	client *redis.Client
	key    string
	size   uint
}

var (
	addScript = redis.NewScript(`
		local vals = redis.call('LRANGE', KEYS[1], '0', '-1')
		for i = 1, #vals do
			if vals[i] == '' then
				redis.call('LSET', KEYS[1], tostring(i - 1), ARGV[1])
				return 1
			end
		end
		return 0
	`)
	removeScript = redis.NewScript(`
		local vals = redis.call('LRANGE', KEYS[1], '0', '-1')
		for i = 1, #vals do
			if vals[i] == ARGV[1] then
				redis.call('LSET', KEYS[1], tostring(i - 1), '')
				return 1
			end
		end
		return 0
	`)
	swapScript = redis.NewScript(`
		local prev = redis.call('LINDEX', KEYS[1], ARGV[1])
		redis.call('LSET', KEYS[1], ARGV[1], ARGV[2])
		return prev
	`)
)

// NewBucketRedis creates a new BucketRedis of _size_ empty slots at _key_.
// Any list already stored at _key_ is replaced.
func NewBucketRedis(client *redis.Client, key string, size uint) (*BucketRedis, error) {
	bucket := &BucketRedis{client, key, size}
	if err := bucket.Clear(); err != nil {
		return nil, fmt.Errorf("filters: error while creating bucket redis: %w", err)
	}
	return bucket, nil
}

// NewBucketRedisFromKey attaches to the existing bucket list saved at redis key _key_
func NewBucketRedisFromKey(client *redis.Client, key string, size uint) *BucketRedis {
	return &BucketRedis{client, key, size}
}

// NewRedisBuckets creates _numBuckets_ buckets of _bucketSize_ slots under a
// generated key prefix, for use with NewCuckooFilterWithBuckets. The prefix
// is returned so other processes can attach with RedisBucketsFromKey.
func NewRedisBuckets(client *redis.Client, numBuckets, bucketSize uint) ([]BucketStore, string, error) {
	prefix := generateRandomString(16)
	buckets := make([]BucketStore, numBuckets)
	for i := range buckets {
		bucket, err := NewBucketRedis(client, bucketKey(prefix, uint(i)), bucketSize)
		if err != nil {
			return nil, "", err
		}
		buckets[i] = bucket
	}
	return buckets, prefix, nil
}

// RedisBucketsFromKey attaches to buckets created by NewRedisBuckets with _prefix_
func RedisBucketsFromKey(client *redis.Client, prefix string, numBuckets, bucketSize uint) []BucketStore {
	buckets := make([]BucketStore, numBuckets)
	for i := range buckets {
		buckets[i] = NewBucketRedisFromKey(client, bucketKey(prefix, uint(i)), bucketSize)
	}
	return buckets
}

func bucketKey(prefix string, index uint) string {
	return "cuckoo_" + prefix + "_bucket_" + strconv.FormatUint(uint64(index), 10)
}

// Key returns the redis key of the bucket list
func (bucket *BucketRedis) Key() string {
	return bucket.key
}

// Size returns the number of slots of the bucket
func (bucket *BucketRedis) Size() uint {
	return bucket.size
}

// elements returns the raw slots stored in the Redis list at _key_
func (bucket *BucketRedis) elements() ([]string, error) {
	elements, err := bucket.client.LRange(context.Background(), bucket.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("filters: error while fetching list values from redis, key: %s: %w", bucket.key, err)
	}
	return elements, nil
}

// Length returns the number of occupied slots
func (bucket *BucketRedis) Length() (uint, error) {
	elements, err := bucket.elements()
	if err != nil {
		return 0, err
	}
	length := uint(0)
	for _, e := range elements {
		if e != "" {
			length++
		}
	}
	return length, nil
}

// IsFree returns true if there is room for more entries in the bucket,
// otherwise false.
func (bucket *BucketRedis) IsFree() (bool, error) {
	length, err := bucket.Length()
	if err != nil {
		return false, err
	}
	return length < bucket.size, nil
}

// Add stores _fingerPrint_ at the first empty slot
func (bucket *BucketRedis) Add(fingerPrint int64) (bool, error) {
	val, err := addScript.Run(context.Background(), bucket.client, []string{bucket.key}, formatFingerPrint(fingerPrint)).Int64()
	if err != nil {
		return false, fmt.Errorf("filters: error while adding fingerprint %d: %w", fingerPrint, err)
	}
	return val == 1, nil
}

// Lookup returns true if _fingerPrint_ is present in the bucket, otherwise false
func (bucket *BucketRedis) Lookup(fingerPrint int64) (bool, error) {
	elements, err := bucket.elements()
	if err != nil {
		return false, err
	}
	value := formatFingerPrint(fingerPrint)
	for _, e := range elements {
		if e == value {
			return true, nil
		}
	}
	return false, nil
}

// Remove empties the first slot holding _fingerPrint_
func (bucket *BucketRedis) Remove(fingerPrint int64) (bool, error) {
	val, err := removeScript.Run(context.Background(), bucket.client, []string{bucket.key}, formatFingerPrint(fingerPrint)).Int64()
	if err != nil {
		return false, fmt.Errorf("filters: error while removing fingerprint %d: %w", fingerPrint, err)
	}
	return val == 1, nil
}

// Swap stores _fingerPrint_ at _index_ and returns the fingerprint previously stored there
func (bucket *BucketRedis) Swap(index uint, fingerPrint int64) (int64, bool, error) {
	prev, err := swapScript.Run(context.Background(), bucket.client, []string{bucket.key}, index, formatFingerPrint(fingerPrint)).Text()
	if err != nil {
		return 0, false, fmt.Errorf("filters: error while swapping slot %d: %w", index, err)
	}
	if prev == "" {
		return 0, false, nil
	}
	prevFingerPrint, err := strconv.ParseInt(prev, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("filters: invalid fingerprint %q at slot %d: %w", prev, index, err)
	}
	return prevFingerPrint, true, nil
}

// Clear replaces the list with _size_ empty slots
func (bucket *BucketRedis) Clear() error {
	ctx := context.Background()
	slots := make([]interface{}, bucket.size)
	for i := range slots {
		slots[i] = ""
	}
	pipe := bucket.client.TxPipeline()
	pipe.Del(ctx, bucket.key)
	if len(slots) > 0 {
		pipe.RPush(ctx, bucket.key, slots...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("filters: error while clearing bucket %s: %w", bucket.key, err)
	}
	return nil
}

// Equals checks if two BucketRedis hold the same fingerprints in the same slots
func (bucket *BucketRedis) Equals(other BucketStore) (bool, error) {
	otherBucket, ok := other.(*BucketRedis)
	if !ok {
		return false, fmt.Errorf("filters: invalid bucket type %T, should be *BucketRedis", other)
	}
	if bucket.size != otherBucket.size {
		return false, nil
	}
	aElements, err := bucket.elements()
	if err != nil {
		return false, err
	}
	bElements, err := otherBucket.elements()
	if err != nil {
		return false, err
	}
	if len(aElements) != len(bElements) {
		return false, nil
	}
	for i := range aElements {
		if aElements[i] != bElements[i] {
			return false, nil
		}
	}
	return true, nil
}

func formatFingerPrint(fingerPrint int64) string {
	return strconv.FormatInt(fingerPrint, 10)
}
