package state

import (
	"sync"
	"time"
)

// BucketInfo is an OSS bucket record.
type BucketInfo struct {
	BucketKey   string       `json:"bucketKey"`
	BucketOwner string       `json:"bucketOwner"`
	CreatedDate int64        `json:"createdDate"`
	PolicyKey   string       `json:"policyKey"`
	Permissions []Permission `json:"permissions"`
}

// Permission grants an auth id a level of access on a bucket.
type Permission struct {
	AuthID string `json:"authId"`
	Access string `json:"access"`
}

// BucketStore keys buckets by their caller-supplied bucket key.
type BucketStore struct {
	mu      sync.RWMutex
	buckets map[string]BucketInfo
}

// NewBucketStore creates an empty bucket store.
func NewBucketStore() *BucketStore {
	return &BucketStore{buckets: make(map[string]BucketInfo)}
}

// Create inserts a bucket. The creation timestamp is synthesized; the key
// is the caller's. An existing bucket with the same key is replaced.
func (s *BucketStore) Create(bucketKey, policyKey string) BucketInfo {
	bucket := BucketInfo{
		BucketKey:   bucketKey,
		BucketOwner: "mock-owner",
		CreatedDate: time.Now().UnixMilli(),
		PolicyKey:   policyKey,
		Permissions: []Permission{},
	}

	s.mu.Lock()
	s.buckets[bucketKey] = bucket
	s.mu.Unlock()
	return bucket
}

// Get returns a bucket by key.
func (s *BucketStore) Get(bucketKey string) (BucketInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bucket, ok := s.buckets[bucketKey]
	return bucket, ok
}

// List returns a snapshot of all buckets.
func (s *BucketStore) List() []BucketInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]BucketInfo, 0, len(s.buckets))
	for _, b := range s.buckets {
		out = append(out, b)
	}
	return out
}

// Delete removes a bucket, reporting whether it existed.
func (s *BucketStore) Delete(bucketKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.buckets[bucketKey]
	delete(s.buckets, bucketKey)
	return ok
}
