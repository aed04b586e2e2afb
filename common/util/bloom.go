package util

import (
	"sync"

	"github.com/spaolacci/murmur3"
)

const (
	bitsPerByte = 8
	hashCount   = 7
)

// BloomFilter answers "possibly seen" or "definitely not seen" for byte keys.
// It is safe for concurrent use.
type BloomFilter struct {
	lock sync.RWMutex

	m    uint64
	n    uint64
	keys []byte
}

// http://pages.cs.wisc.edu/~cao/papers/summary-cache/node8.html
func NewBloomFilter(bits uint64) *BloomFilter {
	if bits == 0 {
		bits = bitsPerByte
	}
	return &BloomFilter{
		m:    bits,
		keys: make([]byte, (bits+bitsPerByte-1)/bitsPerByte),
	}
}

func (f *BloomFilter) Add(data []byte) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.add(data)
}

func (f *BloomFilter) Exists(data []byte) bool {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.exists(data)
}

// Count is the number of Add calls so far.
func (f *BloomFilter) Count() uint64 {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.n
}

func (f *BloomFilter) add(data []byte) {
	for _, loc := range f.locations(data) {
		f.keys[loc/bitsPerByte] |= 1 << (loc % bitsPerByte)
	}
	f.n++
}

func (f *BloomFilter) exists(data []byte) bool {
	for _, loc := range f.locations(data) {
		if f.keys[loc/bitsPerByte]&(1<<(loc%bitsPerByte)) == 0 {
			return false
		}
	}
	return true
}

// locations derives the bit positions by double hashing one 128 bit murmur3
// sum.
func (f *BloomFilter) locations(data []byte) []uint64 {
	h1, h2 := murmur3.Sum128(data)
	r := make([]uint64, hashCount)
	for i := uint64(0); i < hashCount; i++ {
		r[i] = (h1 + i*h2) % f.m
	}
	return r
}
