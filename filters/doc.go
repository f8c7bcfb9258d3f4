/*
Package filters provides data structures and methods for creating probabilistic filters.
This package provides implementations of two of the most widely used filters,
Bloom Filter and Cuckoo Filter, both driven by the hashing package.

A Bloom filter is a space-efficient probabilistic data structure that is used to test
whether an element is a member of a set. It never reports a false negative; the false
positive rate is tuned through the size of the bit array and the number of hash mappers.
Refer: https://web.stanford.edu/~balaji/papers/bloom.pdf

A Cuckoo filter is a data structure used for approximate set membership queries, similar to a
Bloom filter. It stores short fingerprints in buckets and, unlike a Bloom filter, allows
elements to be removed.
Refer: https://www.cs.cmu.edu/~dga/papers/cuckoo-conext2014.pdf

Neither filter is safe for concurrent mutation; callers serialize writers themselves.
*/
package filters
