package state

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ObjectInfo is an OSS object record, keyed by (bucket key, object key).
type ObjectInfo struct {
	BucketKey   string `json:"bucketKey"`
	ObjectKey   string `json:"objectKey"`
	ObjectID    string `json:"objectId"`
	SHA1        string `json:"sha1"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
	Location    string `json:"location"`
}

// ObjectStore groups objects under their owning bucket key.
type ObjectStore struct {
	mu sync.RWMutex
	// bucket_key -> object_key -> object
	objects map[string]map[string]ObjectInfo
}

// NewObjectStore creates an empty object store.
func NewObjectStore() *ObjectStore {
	return &ObjectStore{objects: make(map[string]map[string]ObjectInfo)}
}

// Upload records an object. The object id, digest, and location URL are
// synthesized; bucket and object keys are the caller's.
func (s *ObjectStore) Upload(bucketKey, objectKey string, size int64, contentType string) ObjectInfo {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	object := ObjectInfo{
		BucketKey:   bucketKey,
		ObjectKey:   objectKey,
		ObjectID:    fmt.Sprintf("urn:adsk.objects:os.object:%s/%s", bucketKey, objectKey),
		SHA1:        fmt.Sprintf("sha1_%s", uuid.NewString()),
		Size:        size,
		ContentType: contentType,
		Location:    fmt.Sprintf("https://developer.api.autodesk.com/oss/v2/buckets/%s/objects/%s", bucketKey, objectKey),
	}

	s.mu.Lock()
	bucket, ok := s.objects[bucketKey]
	if !ok {
		bucket = make(map[string]ObjectInfo)
		s.objects[bucketKey] = bucket
	}
	bucket[objectKey] = object
	s.mu.Unlock()
	return object
}

// Get returns one object.
func (s *ObjectStore) Get(bucketKey, objectKey string) (ObjectInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket, ok := s.objects[bucketKey]
	if !ok {
		return ObjectInfo{}, false
	}
	object, ok := bucket[objectKey]
	return object, ok
}

// List returns a snapshot of a bucket's objects.
func (s *ObjectStore) List(bucketKey string) []ObjectInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Always a slice, never nil: listings marshal as JSON arrays even
	// when the bucket is unknown or empty.
	bucket := s.objects[bucketKey]
	out := make([]ObjectInfo, 0, len(bucket))
	for _, o := range bucket {
		out = append(out, o)
	}
	return out
}

// Delete removes an object, reporting whether it existed.
func (s *ObjectStore) Delete(bucketKey, objectKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.objects[bucketKey]
	if !ok {
		return false
	}
	_, ok = bucket[objectKey]
	delete(bucket, objectKey)
	return ok
}
