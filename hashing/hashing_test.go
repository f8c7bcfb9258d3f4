package hashing

import (
	"hash/fnv"
	"math"
	"math/rand"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
	metro "github.com/dgryski/go-metro"
	"github.com/spaolacci/murmur3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/xxh3"
)

const fox = "The quick brown fox jumps over the lazy dog"

func TestCyrb53Vectors(t *testing.T) {
	assert.Equal(t, int64(3338908027751811), Cyrb53.HashString("").AsNumber())
	assert.Equal(t, int64(7929297801672961), Cyrb53.HashString("a").AsNumber())
	assert.Equal(t, int64(4625896200565286), Cyrb53.HashString("hello").AsNumber())
	assert.Equal(t, int64(3873927021076717), Cyrb53.HashString(fox).AsNumber())
	assert.Equal(t, int64(5368154436228575), NewCyrb53(1).HashString("a").AsNumber())
	assert.Equal(t, 53, Cyrb53.Bits())
}

func TestFNV1a32Vectors(t *testing.T) {
	// empty input leaves the offset basis untouched
	assert.Equal(t, int64(2166136261), FNV1a32.HashBytes(nil).AsNumber())
	assert.Equal(t, int64(0xe40c292c), FNV1a32.HashString("a").AsNumber())
	assert.Equal(t, int64(0x048fff90), FNV1a32.HashString(fox).AsNumber())
	assert.Equal(t, "811c9dc5", FNV1a32.HashBytes(nil).String())
}

func TestMurmur3Vectors(t *testing.T) {
	assert.Equal(t, int64(0), Murmur3.HashString("").AsNumber())
	assert.Equal(t, int64(0x3c2569b2), Murmur3.HashString("a").AsNumber())
	assert.Equal(t, int64(0x248bfa47), Murmur3.HashString("hello").AsNumber())
	assert.Equal(t, int64(0x2e4ff723), Murmur3.HashString(fox).AsNumber())
	assert.Equal(t, int64(3806057185), NewMurmur3(42).HashString("hello").AsNumber())
}

func TestNumberEncoding(t *testing.T) {
	// small integers take the 4-byte path, other values the float64 path
	assert.Equal(t, int64(1298961120503115), Cyrb53.HashNumber(0).AsNumber())
	assert.Equal(t, int64(1659531945752261), Cyrb53.HashNumber(1).AsNumber())
	assert.Equal(t, int64(4904615991902543), Cyrb53.HashNumber(-1).AsNumber())
	assert.Equal(t, int64(4347591370936924), Cyrb53.HashNumber(2.5).AsNumber())
	assert.Equal(t, int64(362902671673894), Cyrb53.HashNumber(math.MaxInt32+1).AsNumber())
	assert.Equal(t, int64(8617539807975591), Cyrb53.HashNumber(math.MinInt32).AsNumber())
	assert.Equal(t, Cyrb53.HashNumber(0), Cyrb53.HashNumber(math.Copysign(0, -1)))
	assert.Equal(t, Cyrb53.HashNumber(math.NaN()), Cyrb53.HashNumber(math.Float64frombits(0x7ff8000000000abc)))

	assert.Equal(t, int64(8309288838186682), Cyrb53.HashBool(true).AsNumber())
	assert.Equal(t, int64(4446763975410778), Cyrb53.HashBool(false).AsNumber())
}

func TestOneShotMatchesHasher(t *testing.T) {
	for _, fn := range []HashFunction{Cyrb53, FNV1a32, Murmur3, NewXXH3(), NewSipHash(1, 2)} {
		h := fn.NewHasher()
		h.PutString("approxset")
		assert.Equal(t, fn.HashString("approxset"), h.Hash())

		h = fn.NewHasher()
		h.PutNumber(12.75)
		assert.Equal(t, fn.HashNumber(12.75), h.Hash())
	}
}

func TestChainedWrites(t *testing.T) {
	h := Murmur3.NewHasher()
	h.PutString("ab").PutBool(true).PutNumber(7).PutBytes([]byte{9})
	want := murmur3.Sum32([]byte{'a', 'b', 1, 0, 0, 0, 7, 9})
	assert.Equal(t, uint64(want), h.Hash().Uint64())
}

func TestMurmur3StreamingAcrossWrites(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for n := 0; n < 64; n++ {
		data := make([]byte, n)
		rnd.Read(data)

		h := Murmur3.NewHasher()
		rest := data
		for len(rest) > 0 {
			step := 1 + rnd.Intn(5)
			if step > len(rest) {
				step = len(rest)
			}
			h.PutBytes(rest[:step])
			rest = rest[step:]
		}
		assert.Equal(t, uint64(murmur3.Sum32(data)), h.Hash().Uint64(), "length %d", n)
		assert.Equal(t, uint64(murmur3.Sum32WithSeed(data, 99)), NewMurmur3(99).HashBytes(data).Uint64())
	}
}

func TestFNV1a32MatchesStdlib(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	for n := 0; n < 32; n++ {
		data := make([]byte, n*3)
		rnd.Read(data)
		ref := fnv.New32a()
		_, _ = ref.Write(data)
		assert.Equal(t, uint64(ref.Sum32()), FNV1a32.HashBytes(data).Uint64())
	}
}

func TestLibraryFunctions(t *testing.T) {
	data := []byte(fox)
	assert.Equal(t, xxh3.Hash(data), NewXXH3().HashBytes(data).Uint64())
	assert.Equal(t, xxhash.Sum64(data), NewXXHash64().HashBytes(data).Uint64())
	assert.Equal(t, metro.Hash64(data, 1373), NewMetro64(1373).HashBytes(data).Uint64())
	assert.Equal(t, siphash.Hash(3, 4, data), NewSipHash(3, 4).HashBytes(data).Uint64())
	assert.Equal(t, murmur3.Sum64WithSeed(data, 5), NewMurmur3x64(5).HashBytes(data).Uint64())

	h := NewMetro64(0).NewHasher()
	h.PutString("The quick ").PutString("brown fox jumps over the lazy dog")
	assert.Equal(t, metro.Hash64(data, 0), h.Hash().Uint64())
}

func TestHashCode(t *testing.T) {
	code := Murmur3.HashString("hello")
	assert.Equal(t, 32, code.Bits())
	assert.Equal(t, []byte{0x24, 0x8b, 0xfa, 0x47}, code.Bytes())
	assert.Equal(t, "248bfa47", code.String())

	code = Cyrb53.HashString("a")
	require.Len(t, code.Bytes(), 8)
	assert.Equal(t, "001c2ba782c97901", code.String())

	code = NewXXHash64().HashString("a")
	assert.Equal(t, 64, code.Bits())
	assert.Equal(t, int64(code.Uint64()), code.AsNumber())
}

func TestHasherSingleUse(t *testing.T) {
	h := FNV1a32.NewHasher()
	h.PutString("once")
	h.Hash()
	assert.Panics(t, func() { h.Hash() })
	assert.Panics(t, func() { h.PutNumber(1) })
}

type point struct {
	X, Y int
	Tag  string
}

func pointFunnel(p point, sink PrimitiveSink) {
	sink.PutNumber(float64(p.X)).PutNumber(float64(p.Y)).PutString(p.Tag)
}

func TestFunnelDeterminism(t *testing.T) {
	a := point{1, 2, "p"}
	b := point{1, 2, "p"}
	for _, fn := range []HashFunction{Cyrb53, FNV1a32, Murmur3} {
		assert.Equal(t, HashObject(fn, a, pointFunnel), HashObject(fn, b, pointFunnel))
		assert.NotEqual(t, HashObject(fn, a, pointFunnel), HashObject(fn, point{2, 1, "p"}, pointFunnel))
	}

	h := Cyrb53.NewHasher()
	PutObject(h, a, pointFunnel)
	assert.Equal(t, HashObject(Cyrb53, a, pointFunnel), h.Hash())
}
