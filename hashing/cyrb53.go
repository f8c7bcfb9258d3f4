package hashing

const (
	cyrb53Seed1 = 0xdeadbeef
	cyrb53Seed2 = 0x41c6ce57
	cyrb53Mul1  = 2654435761
	cyrb53Mul2  = 1597334677
	cyrb53Mix1  = 2246822507
	cyrb53Mix2  = 3266489909

	// low 21 bits of h2 form the top of the 53-bit result
	cyrb53HighMask = 0x1fffff
)

// cyrb53Digest keeps two independent 32-bit lanes.
type cyrb53Digest struct {
	h1 uint32
	h2 uint32
}

func newCyrb53Digest(seed uint32) *cyrb53Digest {
	return &cyrb53Digest{h1: cyrb53Seed1 ^ seed, h2: cyrb53Seed2 ^ seed}
}

func (d *cyrb53Digest) write(p []byte) {
	h1, h2 := d.h1, d.h2
	for _, b := range p {
		h1 = (h1 ^ uint32(b)) * cyrb53Mul1
		h2 = (h2 ^ uint32(b)) * cyrb53Mul2
	}
	d.h1, d.h2 = h1, h2
}

func (d *cyrb53Digest) sum() uint64 {
	h1, h2 := d.h1, d.h2
	h1 = (h1 ^ (h1 >> 16)) * cyrb53Mix1
	h1 ^= (h2 ^ (h2 >> 13)) * cyrb53Mix2
	h2 = (h2 ^ (h2 >> 16)) * cyrb53Mix1
	h2 ^= (h1 ^ (h1 >> 13)) * cyrb53Mix2
	return uint64(h2&cyrb53HighMask)<<32 | uint64(h1)
}

// NewCyrb53 returns the 53-bit cyrb53 hash function seeded with _seed_.
func NewCyrb53(seed uint32) *Function {
	return &Function{
		name:      "cyrb53",
		bits:      53,
		newDigest: func() digest { return newCyrb53Digest(seed) },
	}
}
