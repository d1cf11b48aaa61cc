package openapi

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// NamedDocument pairs a parsed document with its logical name: the file's
// path relative to the load root, slashes normalized, extension stripped.
// The name is diagnostic only and has no effect on routing.
type NamedDocument struct {
	Name string
	Doc  *Document
}

// ParseDirectory recursively loads every yaml/yml/json file under dir.
// Files that fail to parse are logged and skipped; they never abort the
// walk. A missing directory yields an empty result with a warning so the
// server can start with no specs loaded.
func ParseDirectory(dir string, log *logrus.Logger) ([]NamedDocument, error) {
	if log == nil {
		log = logrus.New()
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.WithField("dir", dir).Warn("OpenAPI directory does not exist")
		return nil, nil
	}

	var docs []NamedDocument
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" && ext != ".json" {
			return nil
		}

		doc, perr := ParseFile(path)
		if perr != nil {
			log.WithFields(logrus.Fields{
				"file":  path,
				"error": perr,
			}).Warn("Failed to parse OpenAPI spec, skipping")
			return nil
		}

		rel, rerr := filepath.Rel(dir, path)
		if rerr != nil {
			rel = path
		}
		name := strings.TrimSuffix(filepath.ToSlash(rel), ext)
		docs = append(docs, NamedDocument{Name: name, Doc: doc})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk spec directory %s: %w", dir, err)
	}

	return docs, nil
}

// ParseFile parses a single OpenAPI document. JSON documents decode through
// the YAML parser as well; YAML is a superset of JSON.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse spec file: %w", err)
	}

	return &doc, nil
}
