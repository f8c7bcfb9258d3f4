package hashing

import (
	"encoding/binary"
	"math/bits"
)

const (
	c1_32      = 0xcc9e2d51
	c2_32      = 0x1b873593
	block_size = 4
)

// murmur3Digest is a streaming murmur3 x86_32 state. Bytes that do not fill a
// block are carried over to the next write, so the output only depends on the
// concatenated input.
type murmur3Digest struct {
	h1     uint32
	tail   [block_size]byte
	ntail  int
	length uint32
}

func mixK1(k1 uint32) uint32 {
	k1 *= c1_32
	k1 = bits.RotateLeft32(k1, 15)
	k1 *= c2_32
	return k1
}

func (d *murmur3Digest) bmix(k1 uint32) {
	d.h1 ^= mixK1(k1)
	d.h1 = bits.RotateLeft32(d.h1, 13)
	d.h1 = d.h1*5 + 0xe6546b64
}

func (d *murmur3Digest) write(p []byte) {
	d.length += uint32(len(p))
	if d.ntail > 0 {
		n := copy(d.tail[d.ntail:], p)
		d.ntail += n
		p = p[n:]
		if d.ntail < block_size {
			return
		}
		d.bmix(binary.LittleEndian.Uint32(d.tail[:]))
		d.ntail = 0
	}
	nblocks := len(p) / block_size
	for i := 0; i < nblocks; i++ {
		d.bmix(binary.LittleEndian.Uint32(p[i*block_size:]))
	}
	d.ntail = copy(d.tail[:], p[nblocks*block_size:])
}

func (d *murmur3Digest) sum() uint64 {
	h1 := d.h1
	var k1 uint32
	switch d.ntail {
	case 3:
		k1 ^= uint32(d.tail[2]) << 16
		fallthrough
	case 2:
		k1 ^= uint32(d.tail[1]) << 8
		fallthrough
	case 1:
		k1 ^= uint32(d.tail[0])
		h1 ^= mixK1(k1)
	}
	h1 ^= d.length
	return uint64(fmix32(h1))
}

func fmix32(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

// NewMurmur3 returns the streaming 32-bit murmur3 hash function seeded with _seed_.
func NewMurmur3(seed uint32) *Function {
	return &Function{
		name:      "murmur3",
		bits:      32,
		newDigest: func() digest { return &murmur3Digest{h1: seed} },
	}
}
