package openapi

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalSpec = `
openapi: 3.0.0
info:
  title: Minimal
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
                items: []
`

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestParseFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "minimal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalSpec), 0644))

	doc, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", doc.OpenAPI)
	assert.Equal(t, "Minimal", doc.Info.Title)
	require.Contains(t, doc.Paths, "/widgets")
	require.NotNil(t, doc.Paths["/widgets"].Get)
	assert.Equal(t, "listWidgets", doc.Paths["/widgets"].Get.OperationID)
}

func TestParseDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "oss"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "auth.yaml"), []byte(minimalSpec), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "oss", "buckets.yml"), []byte(minimalSpec), 0644))
	// Non-spec files are skipped entirely.
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "README.md"), []byte("docs"), 0644))

	docs, err := ParseDirectory(tmpDir, quietLogger())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	names := []string{docs[0].Name, docs[1].Name}
	assert.Contains(t, names, "auth")
	assert.Contains(t, names, "oss/buckets")
}

func TestParseDirectoryMissingDir(t *testing.T) {
	docs, err := ParseDirectory(filepath.Join(t.TempDir(), "nope"), quietLogger())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestParseDirectorySkipsInvalidSpec(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "good.yaml"), []byte(minimalSpec), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "bad.yaml"), []byte("{unbalanced: ["), 0644))

	docs, err := ParseDirectory(tmpDir, quietLogger())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "good", docs[0].Name)
}

func TestParseFileRefProbe(t *testing.T) {
	spec := `
openapi: 3.0.0
info:
  title: Refs
  version: 1.0.0
paths:
  /things:
    get:
      operationId: listThings
      responses:
        "200":
          $ref: "#/components/responses/ThingList"
components:
  responses:
    ThingList:
      description: OK
      content:
        application/json:
          example: {"things": []}
`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "refs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(spec), 0644))

	doc, err := ParseFile(path)
	require.NoError(t, err)

	resp := doc.Paths["/things"].Get.Responses["200"]
	require.NotNil(t, resp)
	assert.Equal(t, "#/components/responses/ThingList", resp.Ref)
	assert.Nil(t, resp.Def)

	target := doc.Components.Responses["ThingList"]
	require.NotNil(t, target)
	require.NotNil(t, target.Def)
	assert.Contains(t, target.Def.Content, "application/json")
}
