package state

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectUpload(t *testing.T) {
	store := NewObjectStore()

	object := store.Upload("my-bucket", "model.rvt", 1024, "application/octet-stream")
	assert.Equal(t, "my-bucket", object.BucketKey)
	assert.Equal(t, "model.rvt", object.ObjectKey)
	assert.Equal(t, "urn:adsk.objects:os.object:my-bucket/model.rvt", object.ObjectID)
	assert.Equal(t, "https://developer.api.autodesk.com/oss/v2/buckets/my-bucket/objects/model.rvt", object.Location)
	assert.True(t, strings.HasPrefix(object.SHA1, "sha1_"))
	assert.Equal(t, int64(1024), object.Size)

	got, ok := store.Get("my-bucket", "model.rvt")
	require.True(t, ok)
	assert.Equal(t, object, got)
}

func TestObjectListScopedToBucket(t *testing.T) {
	store := NewObjectStore()
	store.Upload("bucket-a", "one", 1, "text/plain")
	store.Upload("bucket-a", "two", 2, "text/plain")
	store.Upload("bucket-b", "three", 3, "text/plain")

	assert.Len(t, store.List("bucket-a"), 2)
	assert.Len(t, store.List("bucket-b"), 1)
}

func TestObjectListUnknownBucket(t *testing.T) {
	store := NewObjectStore()

	// The listing marshals as a JSON array, so it must be a slice even
	// when the bucket has never been seen.
	listing := store.List("bucket-c")
	assert.NotNil(t, listing)
	assert.Empty(t, listing)
}

func TestObjectDelete(t *testing.T) {
	store := NewObjectStore()
	store.Upload("bucket-a", "one", 1, "text/plain")

	assert.True(t, store.Delete("bucket-a", "one"))
	assert.False(t, store.Delete("bucket-a", "one"))
	assert.False(t, store.Delete("missing", "one"))

	_, ok := store.Get("bucket-a", "one")
	assert.False(t, ok)
}

func TestObjectReuploadReplaces(t *testing.T) {
	store := NewObjectStore()
	store.Upload("bucket-a", "one", 1, "text/plain")
	store.Upload("bucket-a", "one", 99, "application/json")

	got, ok := store.Get("bucket-a", "one")
	require.True(t, ok)
	assert.Equal(t, int64(99), got.Size)
	assert.Equal(t, "application/json", got.ContentType)
	assert.Len(t, store.List("bucket-a"), 1)
}
