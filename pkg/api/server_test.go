package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockaps/mockaps/pkg/config"
)

func testConfig(mode config.Mode, specDir string) *config.Config {
	return &config.Config{
		Mode:            mode,
		Host:            "127.0.0.1",
		Port:            "0",
		OpenAPIDir:      specDir,
		LogLevel:        "error",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

func startServer(t *testing.T, mode config.Mode, specDir string) *TestServer {
	t.Helper()
	ts, err := NewTestServer(testConfig(mode, specDir))
	require.NoError(t, err)
	t.Cleanup(ts.Close)
	return ts
}

// obtainToken fetches a bearer token through the token endpoint.
func obtainToken(t *testing.T, ts *TestServer) string {
	t.Helper()
	body := bytes.NewBufferString(`{"client_id": "test-client"}`)
	resp, err := http.Post(ts.URL+"/authentication/v2/token", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var token struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&token))
	require.NotEmpty(t, token.AccessToken)
	return token.AccessToken
}

func doJSON(t *testing.T, method, url, token string, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, payload
}

func TestTokenEndpoint(t *testing.T) {
	ts := startServer(t, config.ModeStateful, t.TempDir())

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/authentication/v2/token", "", `{"client_id": "acme"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var token map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &token))
	assert.Contains(t, token["access_token"], "mock_token_acme_")
	assert.Equal(t, "Bearer", token["token_type"])
	assert.Equal(t, float64(3600), token["expires_in"])

	// The response carries exactly the three OAuth fields; the refresh
	// token never leaves the store.
	assert.NotContains(t, token, "refresh_token")
	assert.Len(t, token, 3)
}

func TestRequestWithoutTokenRejected(t *testing.T) {
	ts := startServer(t, config.ModeStateful, t.TempDir())

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/oss/v2/buckets", "", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var authErr map[string]string
	require.NoError(t, json.Unmarshal(body, &authErr))
	assert.Equal(t, "AUTH-001", authErr["errorCode"])
	assert.NotEmpty(t, authErr["developerMessage"])
}

func TestStaleTokenRejectedAfterReissue(t *testing.T) {
	ts := startServer(t, config.ModeStateful, t.TempDir())

	first := obtainToken(t, ts)
	// Force a distinct token string.
	time.Sleep(1100 * time.Millisecond)
	second := obtainToken(t, ts)
	require.NotEqual(t, first, second)

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/oss/v2/buckets", first, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/oss/v2/buckets", second, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBucketLifecycle(t *testing.T) {
	ts := startServer(t, config.ModeStateful, t.TempDir())
	token := obtainToken(t, ts)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/oss/v2/buckets", token,
		`{"bucketKey": "my-bucket", "policyKey": "transient"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var bucket map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &bucket))
	assert.Equal(t, "my-bucket", bucket["bucketKey"])
	// createdDate is a numeric timestamp, not a string.
	assert.IsType(t, float64(0), bucket["createdDate"])

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/oss/v2/buckets", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listing struct {
		Items []map[string]interface{} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(body, &listing))
	require.Len(t, listing.Items, 1)
	assert.Equal(t, "my-bucket", listing.Items[0]["bucketKey"])
}

func TestCreateBucketValidation(t *testing.T) {
	ts := startServer(t, config.ModeStateful, t.TempDir())
	token := obtainToken(t, ts)

	// Missing bucketKey
	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/oss/v2/buckets", token, `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown policyKey
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/oss/v2/buckets", token,
		`{"bucketKey": "b", "policyKey": "eternal"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestObjectUploadAndList(t *testing.T) {
	ts := startServer(t, config.ModeStateful, t.TempDir())
	token := obtainToken(t, ts)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/oss/v2/buckets", token, `{"bucketKey": "my-bucket"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPut, ts.URL+"/oss/v2/buckets/my-bucket/objects/model.rvt", token, `binary-ish payload`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var object map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &object))
	assert.Equal(t, "urn:adsk.objects:os.object:my-bucket/model.rvt", object["objectId"])

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/oss/v2/buckets/my-bucket/objects", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listing struct {
		Items []map[string]interface{} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(body, &listing))
	require.Len(t, listing.Items, 1)
	assert.Equal(t, "model.rvt", listing.Items[0]["objectKey"])
}

func TestListObjectsAlwaysAnArray(t *testing.T) {
	ts := startServer(t, config.ModeStateful, t.TempDir())
	token := obtainToken(t, ts)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/oss/v2/buckets", token, `{"bucketKey": "empty-bucket"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// An empty bucket and an unknown bucket both list as an empty JSON
	// array, never null.
	for _, bucket := range []string{"empty-bucket", "ghost"} {
		resp, body := doJSON(t, http.MethodGet, ts.URL+"/oss/v2/buckets/"+bucket+"/objects", token, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, "bucket %s", bucket)
		assert.JSONEq(t, `{"items": []}`, string(body), "bucket %s", bucket)
	}
}

func TestHubsSeeded(t *testing.T) {
	ts := startServer(t, config.ModeStateful, t.TempDir())
	token := obtainToken(t, ts)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/project/v1/hubs", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data []struct {
			Type       string                 `json:"type"`
			ID         string                 `json:"id"`
			Attributes map[string]interface{} `json:"attributes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "hubs", envelope.Data[0].Type)
	assert.Equal(t, "b.default-hub", envelope.Data[0].ID)
	assert.Equal(t, "Default Hub", envelope.Data[0].Attributes["name"])

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/project/v1/hubs/b.default-hub/projects", token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/project/v1/hubs/b.ghost", token, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTranslationJobProgression(t *testing.T) {
	ts := startServer(t, config.ModeStateful, t.TempDir())
	token := obtainToken(t, ts)

	urn := "urn:adsk.objects:os.object:my-bucket/model.rvt"
	encoded := base64.StdEncoding.EncodeToString([]byte(urn))

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/modelderivative/v2/designdata/job", token,
		fmt.Sprintf(`{"input": {"urn": %q}, "output": {"formats": [{"type": "svf2"}]}}`, urn))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var job map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &job))
	assert.Equal(t, "success", job["result"])
	assert.Equal(t, urn, job["urn"])

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/modelderivative/v2/designdata/"+encoded+"/manifest", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var manifest map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &manifest))
	assert.Equal(t, "pending", manifest["status"])

	// Drive the job to completion.
	for i := 0; i < 5; i++ {
		ts.State().Translations.AdvanceAll()
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/modelderivative/v2/designdata/"+encoded+"/manifest", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &manifest))
	assert.Equal(t, "success", manifest["status"])
	assert.Equal(t, "complete", manifest["progress"])
	assert.NotEmpty(t, manifest["derivatives"])
}

func TestManifestUnknownURN(t *testing.T) {
	ts := startServer(t, config.ModeStateful, t.TempDir())
	token := obtainToken(t, ts)

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/modelderivative/v2/designdata/bm8tc3VjaC11cm4=/manifest", token, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIssueCreateDefaults(t *testing.T) {
	ts := startServer(t, config.ModeStateful, t.TempDir())
	token := obtainToken(t, ts)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/construction/issues/v1/projects/b.default-project/issues", token, `{}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "Untitled Issue", created.Data["title"])
	assert.Equal(t, "open", created.Data["status"])
	assert.NotEmpty(t, created.Data["id"])

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/construction/issues/v1/projects/b.default-project/issues", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listing struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &listing))
	assert.Len(t, listing.Data, 1)
}

func TestListIssuesAlwaysAnArray(t *testing.T) {
	ts := startServer(t, config.ModeStateful, t.TempDir())
	token := obtainToken(t, ts)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/construction/issues/v1/projects/b.no-issues/issues", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"data": []}`, string(body))
}

func TestWebhookLifecycleHTTP(t *testing.T) {
	ts := startServer(t, config.ModeStateful, t.TempDir())
	token := obtainToken(t, ts)
	base := ts.URL + "/webhooks/v1/systems/data/events/dm.version.added/hooks"

	resp, body := doJSON(t, http.MethodPost, base, token,
		`{"callbackUrl": "https://example.com/hook", "scope": {"folder": "urn:folder"}}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var hook map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &hook))
	hookID, _ := hook["hookId"].(string)
	require.NotEmpty(t, hookID)
	assert.Equal(t, "active", hook["status"])

	// Listed under its own system only.
	resp, body = doJSON(t, http.MethodGet, base, token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listing struct {
		Hooks []map[string]interface{} `json:"hooks"`
	}
	require.NoError(t, json.Unmarshal(body, &listing))
	assert.Len(t, listing.Hooks, 1)

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/webhooks/v1/systems/derivative/events/x/hooks", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &listing))
	assert.Empty(t, listing.Hooks)

	resp, _ = doJSON(t, http.MethodDelete, base+"/"+hookID, token, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodDelete, base+"/"+hookID, token, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStatelessMode(t *testing.T) {
	ts := startServer(t, config.ModeStateless, t.TempDir())

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/authentication/v2/token", "", `{}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var token map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &token))
	assert.Equal(t, "mock-token", token["access_token"])

	// Any bearer passes; collections are fixed and empty.
	resp, body = doJSON(t, http.MethodGet, ts.URL+"/oss/v2/buckets", "whatever", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"items": []}`, string(body))

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/project/v1/hubs/b.anything", "whatever", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

const widgetSpec = `
openapi: 3.0.0
info:
  title: Widgets
  version: 1.0.0
paths:
  /widgets:
    get:
      operationId: listWidgets
      responses:
        "200":
          description: OK
          content:
            application/json:
              example:
                widgets: ["w-1", "w-2"]
  /widgets/{widgetId}:
    get:
      operationId: getWidget
      responses:
        "200":
          description: OK
`

func writeSpec(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestSynthesizedRoutes(t *testing.T) {
	specDir := t.TempDir()
	writeSpec(t, specDir, "widgets.yaml", widgetSpec)

	ts := startServer(t, config.ModeStateful, specDir)
	token := obtainToken(t, ts)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/widgets", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"widgets": ["w-1", "w-2"]}`, string(body))

	// Response declared without an example resolves to an empty 200.
	resp, body = doJSON(t, http.MethodGet, ts.URL+"/widgets/w-1", token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)
}

func TestSynthesizedRouteNoExample(t *testing.T) {
	specDir := t.TempDir()
	writeSpec(t, specDir, "gadgets.yaml", `
openapi: 3.0.0
info:
  title: Gadgets
  version: 1.0.0
paths:
  /gadgets:
    get:
      operationId: listGadgets
      responses:
        "404":
          description: Only errors documented
`)

	ts := startServer(t, config.ModeStateful, specDir)
	token := obtainToken(t, ts)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/gadgets", token, "")
	require.Equal(t, http.StatusNotImplemented, resp.StatusCode)

	var failure map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &failure))
	assert.Equal(t, "listGadgets", failure["operation_id"])
	assert.NotEmpty(t, failure["message"])
}

func TestSynthesizedRouteShadowsStatefulEndpoint(t *testing.T) {
	specDir := t.TempDir()
	writeSpec(t, specDir, "oss.yaml", `
openapi: 3.0.0
info:
  title: OSS Override
  version: 1.0.0
paths:
  /oss/v2/buckets:
    get:
      operationId: listBucketsFromSpec
      responses:
        "200":
          description: OK
          content:
            application/json:
              example:
                items: [{"bucketKey": "from-spec"}]
`)

	ts := startServer(t, config.ModeStateful, specDir)
	token := obtainToken(t, ts)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/oss/v2/buckets", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"items": [{"bucketKey": "from-spec"}]}`, string(body))

	// The stateful POST is untouched by the spec.
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/oss/v2/buckets", token, `{"bucketKey": "b"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDuplicateRoutesAcrossCasings(t *testing.T) {
	specDir := t.TempDir()
	writeSpec(t, specDir, "a.yaml", `
openapi: 3.0.0
info:
  title: A
  version: 1.0.0
paths:
  /items/{itemId}:
    get:
      operationId: getItemA
      responses:
        "200":
          description: OK
          content:
            application/json:
              example: {"from": "a"}
`)
	writeSpec(t, specDir, "b.yaml", `
openapi: 3.0.0
info:
  title: B
  version: 1.0.0
paths:
  /items/{item_id}:
    get:
      operationId: getItemB
      responses:
        "200":
          description: OK
          content:
            application/json:
              example: {"from": "b"}
`)

	ts := startServer(t, config.ModeStateful, specDir)
	token := obtainToken(t, ts)

	// Both spellings normalize to one pattern. Specs load in sorted file
	// order, so a.yaml's operation wins registration on every run.
	resp, body := doJSON(t, http.MethodGet, ts.URL+"/items/42", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"from": "a"}`, string(body))

	require.NoError(t, ts.Rebuild())
	resp, body = doJSON(t, http.MethodGet, ts.URL+"/items/42", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"from": "a"}`, string(body))
}

func TestRebuildPicksUpNewSpecs(t *testing.T) {
	specDir := t.TempDir()
	ts := startServer(t, config.ModeStateful, specDir)
	token := obtainToken(t, ts)

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/widgets", token, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	writeSpec(t, specDir, "widgets.yaml", widgetSpec)
	require.NoError(t, ts.Rebuild())

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/widgets", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"widgets": ["w-1", "w-2"]}`, string(body))
}

func TestCORSPreflight(t *testing.T) {
	ts := startServer(t, config.ModeStateful, t.TempDir())

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/oss/v2/buckets", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Preflight succeeds without authentication.
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	ts := startServer(t, config.ModeStateful, t.TempDir())

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body)
}
