// Package catalog is the in-memory schema store backing the demo frontend:
// passport schema documents keyed by name, with URN lookup and an optional
// simulated network latency so UI flows exercise their loading states.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-memdb"

	schemaform "github.com/jalvaro-lks/industry-core-hub-sub004"
)

// ErrNotFound is returned when no record matches the lookup.
var ErrNotFound = errors.New("catalog: schema not found")

const tblSchemas = "schemas"

var dbSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		tblSchemas: {
			Name: tblSchemas,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "Key"},
				},
				"urn": {
					Name:         "urn",
					AllowMissing: true,
					Indexer:      &memdb.StringFieldIndex{Field: "URN"},
				},
			},
		},
	},
}

// Record is one stored schema document.
type Record struct {
	// Key is the catalog identifier, e.g. "digital-product-passport-v5".
	Key string
	// URN is the aspect model URN of the schema root, "" when absent.
	URN     string
	Aspect  string
	Version string
	// Document is the decoded schema; Raw keeps the source bytes.
	Document *schemaform.Document
	Raw      []byte
}

// Options configures a Catalog.
type Options struct {
	// Latency delays every read, simulating the network the real backend
	// sits behind. Reads honor context cancellation while waiting.
	Latency time.Duration
}

// Catalog is a concurrency-safe in-memory schema store.
type Catalog struct {
	db      *memdb.MemDB
	latency time.Duration
}

// New returns an empty catalog.
func New(opts Options) (*Catalog, error) {
	db, err := memdb.NewMemDB(dbSchema)
	if err != nil {
		return nil, fmt.Errorf("catalog: new memdb: %w", err)
	}
	return &Catalog{db: db, latency: opts.Latency}, nil
}

// Put inserts or replaces a record by key.
func (c *Catalog) Put(r *Record) error {
	if r == nil || r.Key == "" {
		return errors.New("catalog: record without key")
	}
	txn := c.db.Txn(true)
	if err := txn.Insert(tblSchemas, r); err != nil {
		txn.Abort()
		return fmt.Errorf("catalog: insert %s: %w", r.Key, err)
	}
	txn.Commit()
	return nil
}

// Get returns the record stored under key.
func (c *Catalog) Get(ctx context.Context, key string) (*Record, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	txn := c.db.Txn(false)
	defer txn.Abort()
	raw, err := txn.First(tblSchemas, "id", key)
	if err != nil {
		return nil, fmt.Errorf("catalog: get %s: %w", key, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("catalog: get %s: %w", key, ErrNotFound)
	}
	return raw.(*Record), nil
}

// GetByURN returns the record whose root URN equals urn.
func (c *Catalog) GetByURN(ctx context.Context, urn string) (*Record, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	txn := c.db.Txn(false)
	defer txn.Abort()
	raw, err := txn.First(tblSchemas, "urn", urn)
	if err != nil {
		return nil, fmt.Errorf("catalog: get by urn %s: %w", urn, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("catalog: get by urn %s: %w", urn, ErrNotFound)
	}
	return raw.(*Record), nil
}

// List returns every record in key order.
func (c *Catalog) List(ctx context.Context) ([]*Record, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	txn := c.db.Txn(false)
	defer txn.Abort()
	it, err := txn.Get(tblSchemas, "id")
	if err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	var out []*Record
	for raw := it.Next(); raw != nil; raw = it.Next() {
		out = append(out, raw.(*Record))
	}
	return out, nil
}

// Delete removes the record stored under key. Deleting a missing key is
// ErrNotFound.
func (c *Catalog) Delete(ctx context.Context, key string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	txn := c.db.Txn(true)
	raw, err := txn.First(tblSchemas, "id", key)
	if err != nil {
		txn.Abort()
		return fmt.Errorf("catalog: delete %s: %w", key, err)
	}
	if raw == nil {
		txn.Abort()
		return fmt.Errorf("catalog: delete %s: %w", key, ErrNotFound)
	}
	if err := txn.Delete(tblSchemas, raw); err != nil {
		txn.Abort()
		return fmt.Errorf("catalog: delete %s: %w", key, err)
	}
	txn.Commit()
	return nil
}

func (c *Catalog) wait(ctx context.Context) error {
	if c.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(c.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
