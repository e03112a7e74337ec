// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cloudflare/backoff"
	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"sigs.k8s.io/yaml"

	"github.com/jakob-ledermann/database/pkg/schema"
)

//go:embed manifest_schema.json
var manifestSchemaDoc string

const (
	lockFileName        = ".lock"
	manifestFileName    = "catalog.json"
	lockAcquireTimeout  = 10 * time.Second
	lockBackoffInterval = 100 * time.Millisecond
)

// manifest is the on-disk representation of the catalog metadata. Row data
// is not persisted.
type manifest struct {
	CatalogID string           `json:"catalog_id"`
	Schemas   []manifestSchema `json:"schemas"`
}

type manifestSchema struct {
	Name   string          `json:"name"`
	Tables []manifestTable `json:"tables,omitempty"`
}

type manifestTable struct {
	Name    string          `json:"name"`
	Columns []schema.Column `json:"columns"`
}

type store struct {
	dir       string
	catalogID string
}

// Open loads (or initializes) a catalog backed by the given data directory.
// The directory is locked for the lifetime of the manager; a second Open on
// the same directory retries with backoff and then fails. Close releases
// the lock.
func Open(ctx context.Context, dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	if err := acquireLock(ctx, dir); err != nil {
		return nil, err
	}

	m := NewInMemory()
	m.store = &store{dir: dir, catalogID: uuid.NewString()}

	mf, err := readManifest(dir)
	if err != nil {
		releaseLock(dir)
		return nil, err
	}
	if mf != nil {
		m.store.catalogID = mf.CatalogID
		for _, s := range mf.Schemas {
			sd := &schemaData{tables: make(map[string]*tableData)}
			for _, t := range s.Tables {
				cols := make([]schema.Column, len(t.Columns))
				copy(cols, t.Columns)
				sd.tables[t.Name] = &tableData{columns: cols}
			}
			m.schemas[s.Name] = sd
		}
	}
	return m, nil
}

// Close releases the data-directory lock of a manager created with Open. It
// is a no-op for in-memory catalogs.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.store == nil {
		return nil
	}
	releaseLock(m.store.dir)
	m.store = nil
	return nil
}

// persist rewrites the manifest. Callers hold m.mu.
func (m *Manager) persist() error {
	if m.store == nil {
		return nil
	}

	mf := manifest{CatalogID: m.store.catalogID}
	schemaNames := make([]string, 0, len(m.schemas))
	for name := range m.schemas {
		schemaNames = append(schemaNames, name)
	}
	sort.Strings(schemaNames)
	for _, name := range schemaNames {
		ms := manifestSchema{Name: name}
		sd := m.schemas[name]
		tableNames := make([]string, 0, len(sd.tables))
		for tname := range sd.tables {
			tableNames = append(tableNames, tname)
		}
		sort.Strings(tableNames)
		for _, tname := range tableNames {
			ms.Tables = append(ms.Tables, manifestTable{
				Name:    tname,
				Columns: sd.tables[tname].columns,
			})
		}
		mf.Schemas = append(mf.Schemas, ms)
	}

	data, err := json.MarshalIndent(mf, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog manifest: %w", err)
	}
	path := filepath.Join(m.store.dir, manifestFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog manifest: %w", err)
	}
	return os.Rename(tmp, path)
}

// readManifest loads and validates the manifest from the data directory.
// Both JSON and YAML manifests are accepted; YAML is converted to JSON
// before schema validation. A missing manifest is not an error.
func readManifest(dir string) (*manifest, error) {
	candidates := []string{manifestFileName, "catalog.yaml", "catalog.yml"}

	var path string
	for _, name := range candidates {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			path = p
			break
		}
	}
	if path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog manifest: %w", err)
	}
	if ext := filepath.Ext(path); ext == ".yaml" || ext == ".yml" {
		raw, err = yaml.YAMLToJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("converting catalog manifest to JSON: %w", err)
		}
	}

	if err := validateManifest(raw); err != nil {
		return nil, fmt.Errorf("invalid catalog manifest %s: %w", path, err)
	}

	mf := &manifest{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(mf); err != nil {
		return nil, fmt.Errorf("decoding catalog manifest: %w", err)
	}
	return mf, nil
}

func validateManifest(raw []byte) error {
	schemaDoc, err := jsonschema.UnmarshalJSON(strings.NewReader(manifestSchemaDoc))
	if err != nil {
		return fmt.Errorf("parsing manifest schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("catalog-manifest.json", schemaDoc); err != nil {
		return fmt.Errorf("loading manifest schema: %w", err)
	}
	sch, err := compiler.Compile("catalog-manifest.json")
	if err != nil {
		return fmt.Errorf("compiling manifest schema: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	return sch.Validate(doc)
}

// acquireLock takes the data-directory lock, retrying with exponential
// backoff while another process holds it.
func acquireLock(ctx context.Context, dir string) error {
	path := filepath.Join(dir, lockFileName)
	deadline := time.Now().Add(lockAcquireTimeout)
	b := backoff.New(lockAcquireTimeout, lockBackoffInterval)

	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			fmt.Fprintf(f, "%d\n", os.Getpid())
			return f.Close()
		}
		if !errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("locking data directory: %w", err)
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("data directory %q is locked by another process", dir)
		}
		if err := sleepCtx(ctx, b.Duration()); err != nil {
			return err
		}
	}
}

func releaseLock(dir string) {
	os.Remove(filepath.Join(dir, lockFileName))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
