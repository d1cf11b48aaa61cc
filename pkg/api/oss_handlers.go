package api

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mockaps/mockaps/pkg/httputil"
	"github.com/mockaps/mockaps/pkg/state"
)

// listBuckets handles GET /oss/v2/buckets.
func (s *Server) listBuckets(w http.ResponseWriter, r *http.Request) {
	if s.state == nil {
		httputil.WriteSuccess(w, map[string]interface{}{"items": []interface{}{}})
		return
	}
	httputil.WriteSuccess(w, map[string]interface{}{"items": s.state.Buckets.List()})
}

// createBucket handles POST /oss/v2/buckets.
func (s *Server) createBucket(w http.ResponseWriter, r *http.Request) {
	if s.state == nil {
		httputil.WriteSuccess(w, map[string]interface{}{
			"bucketKey":   "mock-bucket",
			"createdDate": time.Now().UnixMilli(),
			"policyKey":   "transient",
		})
		return
	}

	var req createBucketRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if err := s.validate.Struct(req); err != nil {
		httputil.WriteReason(w, http.StatusBadRequest, "invalid bucket request: %v", err)
		return
	}
	if req.PolicyKey == "" {
		req.PolicyKey = "transient"
	}

	bucket := s.state.Buckets.Create(req.BucketKey, req.PolicyKey)
	s.log.WithField("bucket", bucket.BucketKey).Debug("Created bucket")
	httputil.WriteSuccess(w, bucket)
}

// listObjects handles GET /oss/v2/buckets/{bucket_key}/objects. An unknown
// bucket key lists as empty rather than 404.
func (s *Server) listObjects(w http.ResponseWriter, r *http.Request) {
	if s.state == nil {
		httputil.WriteSuccess(w, map[string]interface{}{"items": []interface{}{}})
		return
	}

	bucketKey := httputil.GetPathVars(r)["bucket_key"]
	httputil.WriteSuccess(w, map[string]interface{}{"items": s.state.Objects.List(bucketKey)})
}

// uploadObject handles PUT /oss/v2/buckets/{bucket_key}/objects/{object_key}.
// The body is not retained; only its length and declared content type are
// recorded on the object.
func (s *Server) uploadObject(w http.ResponseWriter, r *http.Request) {
	vars := httputil.GetPathVars(r)
	bucketKey, objectKey := vars["bucket_key"], vars["object_key"]

	size := r.ContentLength
	if size < 0 {
		size = 0
	}
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if s.state == nil {
		httputil.WriteSuccess(w, state.ObjectInfo{
			BucketKey:   bucketKey,
			ObjectKey:   objectKey,
			ObjectID:    "urn:adsk.objects:os.object:" + bucketKey + "/" + objectKey,
			Size:        size,
			ContentType: contentType,
		})
		return
	}

	if _, ok := s.state.Buckets.Get(bucketKey); !ok {
		httputil.WriteReason(w, http.StatusNotFound, "Bucket %s not found", bucketKey)
		return
	}

	object := s.state.Objects.Upload(bucketKey, objectKey, size, contentType)
	s.log.WithFields(logrus.Fields{
		"bucket": bucketKey,
		"object": objectKey,
	}).Debug("Uploaded object")
	httputil.WriteSuccess(w, object)
}
