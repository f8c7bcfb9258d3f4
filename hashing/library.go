package hashing

import (
	"encoding/binary"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
	metro "github.com/dgryski/go-metro"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// sum64Writer covers the streaming digests of the third-party packages.
type sum64Writer interface {
	io.Writer
	Sum64() uint64
}

type writerDigest struct {
	w sum64Writer
}

func (d writerDigest) write(p []byte) {
	// the digests of these packages never return an error from Write
	_, _ = d.w.Write(p)
}

func (d writerDigest) sum() uint64 {
	return d.w.Sum64()
}

// metroDigest buffers the input, go-metro only hashes whole buffers.
type metroDigest struct {
	seed uint64
	buf  []byte
}

func (d *metroDigest) write(p []byte) {
	d.buf = append(d.buf, p...)
}

func (d *metroDigest) sum() uint64 {
	return metro.Hash64(d.buf, d.seed)
}

// NewXXH3 returns a 64-bit hash function backed by github.com/zeebo/xxh3.
func NewXXH3() *Function {
	return &Function{
		name:      "xxh3",
		bits:      64,
		newDigest: func() digest { return writerDigest{xxh3.New()} },
	}
}

// NewXXHash64 returns a 64-bit hash function backed by github.com/cespare/xxhash/v2.
func NewXXHash64() *Function {
	return &Function{
		name:      "xxhash64",
		bits:      64,
		newDigest: func() digest { return writerDigest{xxhash.New()} },
	}
}

// NewMetro64 returns a 64-bit hash function backed by github.com/dgryski/go-metro.
func NewMetro64(seed uint64) *Function {
	return &Function{
		name:      "metro64",
		bits:      64,
		newDigest: func() digest { return &metroDigest{seed: seed} },
	}
}

// NewSipHash returns the keyed SipHash-2-4 function for the 128-bit key _k0_, _k1_.
func NewSipHash(k0, k1 uint64) *Function {
	var key [16]byte
	binary.LittleEndian.PutUint64(key[:8], k0)
	binary.LittleEndian.PutUint64(key[8:], k1)
	return &Function{
		name:      "siphash",
		bits:      64,
		newDigest: func() digest { return writerDigest{siphash.New(key[:])} },
	}
}

// NewMurmur3x64 returns the first 64 bits of murmur3 x64_128, backed by
// github.com/spaolacci/murmur3.
func NewMurmur3x64(seed uint32) *Function {
	return &Function{
		name:      "murmur3x64",
		bits:      64,
		newDigest: func() digest { return writerDigest{murmur3.New64WithSeed(seed)} },
	}
}
