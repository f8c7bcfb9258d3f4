/*
Package hashing provides a pluggable, non-cryptographic hashing framework.

Values are decomposed into an ordered stream of primitive writes against a
PrimitiveSink. A Hasher is a single-use sink that finalizes into a HashCode, and
a HashFunction is a stateless factory of fresh Hashers. Composite values are fed
through a Funnel, a caller supplied function writing the fields of a value in a
stable order.

Three algorithms are implemented with bit-exact mixing: Cyrb53 (53-bit),
FNV1a32 and Murmur3 (x86, 32-bit, streaming). Further 64-bit functions stream
the same encoding into third-party digests (xxh3, xxhash, metro, siphash and
murmur3 x64).

HashAny and EqualsAny give structural hashing and equality over arbitrary Go
values. For all x and y, EqualsAny(x, y) implies HashAny(x) == HashAny(y); the
filters and any hashed collection depend on that law.
*/
package hashing
