package hashing

const (
	fnvOffsetBasis32 = 2166136261
	fnvPrime32       = 16777619
)

type fnv1a32Digest uint32

func (d *fnv1a32Digest) write(p []byte) {
	state := uint32(*d)
	for _, b := range p {
		state = (state ^ uint32(b)) * fnvPrime32
	}
	*d = fnv1a32Digest(state)
}

func (d *fnv1a32Digest) sum() uint64 {
	return uint64(*d)
}

// NewFNV1a32 returns the 32-bit FNV-1a hash function.
func NewFNV1a32() *Function {
	return &Function{
		name: "fnv1a32",
		bits: 32,
		newDigest: func() digest {
			d := fnv1a32Digest(fnvOffsetBasis32)
			return &d
		},
	}
}
