package hashing

// Hasher is a single-use PrimitiveSink. It is constructed by a HashFunction,
// fed with primitive writes, and finalized exactly once with Hash.
type Hasher interface {
	PrimitiveSink
	Hash() HashCode
}

// HashFunction is a stateless factory of Hashers. Implementations hold no
// per-call state and are safe to share.
type HashFunction interface {
	// NewHasher returns a fresh, independent Hasher.
	NewHasher() Hasher
	// Bits returns the width of the codes produced.
	Bits() int
	HashNumber(n float64) HashCode
	HashBytes(p []byte) HashCode
	HashBool(b bool) HashCode
	HashString(s string) HashCode
}

// HashObject hashes _value_ through _funnel_ with a fresh hasher of _fn_.
func HashObject[T any](fn HashFunction, value T, funnel Funnel[T]) HashCode {
	h := fn.NewHasher()
	funnel(value, h)
	return h.Hash()
}

// digest is the byte-level state of one algorithm.
type digest interface {
	write(p []byte)
	sum() uint64
}

// streamHasher turns primitive writes into bytes for a digest.
type streamHasher struct {
	digest  digest
	bits    int
	done    bool
	scratch [8]byte
}

func (hasher *streamHasher) check() {
	if hasher.done {
		panic("hashing: hasher used after Hash")
	}
}

func (hasher *streamHasher) PutNumber(n float64) PrimitiveSink {
	hasher.check()
	hasher.digest.write(encodeNumber(&hasher.scratch, n))
	return hasher
}

func (hasher *streamHasher) PutBytes(p []byte) PrimitiveSink {
	hasher.check()
	hasher.digest.write(p)
	return hasher
}

func (hasher *streamHasher) PutBool(b bool) PrimitiveSink {
	hasher.check()
	hasher.scratch[0] = 0
	if b {
		hasher.scratch[0] = 1
	}
	hasher.digest.write(hasher.scratch[:1])
	return hasher
}

func (hasher *streamHasher) PutString(s string) PrimitiveSink {
	hasher.check()
	hasher.digest.write([]byte(s))
	return hasher
}

// Hash finalizes the hasher. Any further use panics.
func (hasher *streamHasher) Hash() HashCode {
	hasher.check()
	hasher.done = true
	return newHashCode(hasher.bits, hasher.digest.sum())
}

// Function is a HashFunction built from a digest constructor.
type Function struct {
	name      string
	bits      int
	newDigest func() digest
}

// NewHasher returns a fresh Hasher
func (fn *Function) NewHasher() Hasher {
	return &streamHasher{digest: fn.newDigest(), bits: fn.bits}
}

// Bits returns the width of the codes produced by _fn_
func (fn *Function) Bits() int {
	return fn.bits
}

// HashNumber is equivalent to NewHasher().PutNumber(n) followed by Hash.
func (fn *Function) HashNumber(n float64) HashCode {
	h := fn.NewHasher()
	h.PutNumber(n)
	return h.Hash()
}

// HashBytes is equivalent to NewHasher().PutBytes(p) followed by Hash.
func (fn *Function) HashBytes(p []byte) HashCode {
	h := fn.NewHasher()
	h.PutBytes(p)
	return h.Hash()
}

// HashBool is equivalent to NewHasher().PutBool(b) followed by Hash.
func (fn *Function) HashBool(b bool) HashCode {
	h := fn.NewHasher()
	h.PutBool(b)
	return h.Hash()
}

// HashString is equivalent to NewHasher().PutString(s) followed by Hash.
func (fn *Function) HashString(s string) HashCode {
	h := fn.NewHasher()
	h.PutString(s)
	return h.Hash()
}

func (fn *Function) String() string {
	return fn.name
}
