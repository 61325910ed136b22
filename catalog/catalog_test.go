package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	schemaform "github.com/jalvaro-lks/industry-core-hub-sub004"
	"github.com/jalvaro-lks/industry-core-hub-sub004/catalog"
)

func record(t *testing.T, key, urn string) *catalog.Record {
	t.Helper()
	doc, err := schemaform.DocumentFromJSON([]byte(`{
		"type": "object",
		"properties": {"name": {"type": "string"}}
	}`))
	if err != nil {
		t.Fatalf("document err: %v", err)
	}
	return &catalog.Record{Key: key, URN: urn, Version: "1.0.0", Document: doc}
}

func TestPutGetList(t *testing.T) {
	ctx := context.Background()
	c, err := catalog.New(catalog.Options{})
	if err != nil {
		t.Fatalf("new err: %v", err)
	}
	if err := c.Put(record(t, "dpp-v5", "urn:samm:io.catenax.dpp:5.0.0#Pass")); err != nil {
		t.Fatalf("put err: %v", err)
	}
	if err := c.Put(record(t, "battery-v6", "urn:samm:io.catenax.battery:6.0.0#Battery")); err != nil {
		t.Fatalf("put err: %v", err)
	}

	got, err := c.Get(ctx, "dpp-v5")
	if err != nil {
		t.Fatalf("get err: %v", err)
	}
	if got.URN != "urn:samm:io.catenax.dpp:5.0.0#Pass" || got.Document == nil {
		t.Fatalf("unexpected record: %+v", got)
	}

	byURN, err := c.GetByURN(ctx, "urn:samm:io.catenax.battery:6.0.0#Battery")
	if err != nil || byURN.Key != "battery-v6" {
		t.Fatalf("get by urn: %+v %v", byURN, err)
	}

	recs, err := c.List(ctx)
	if err != nil {
		t.Fatalf("list err: %v", err)
	}
	if len(recs) != 2 || recs[0].Key != "battery-v6" || recs[1].Key != "dpp-v5" {
		t.Fatalf("key order lost: %+v", recs)
	}
}

func TestGet_NotFound(t *testing.T) {
	c, _ := catalog.New(catalog.Options{})
	_, err := c.Get(context.Background(), "nope")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	_, err = c.GetByURN(context.Background(), "urn:none")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPut_Replace(t *testing.T) {
	c, _ := catalog.New(catalog.Options{})
	if err := c.Put(record(t, "dpp", "urn:a")); err != nil {
		t.Fatalf("put err: %v", err)
	}
	if err := c.Put(record(t, "dpp", "urn:b")); err != nil {
		t.Fatalf("replace err: %v", err)
	}
	got, err := c.Get(context.Background(), "dpp")
	if err != nil || got.URN != "urn:b" {
		t.Fatalf("replace lost: %+v %v", got, err)
	}
	recs, _ := c.List(context.Background())
	if len(recs) != 1 {
		t.Fatalf("replace duplicated: %d", len(recs))
	}
}

func TestPut_WithoutKey(t *testing.T) {
	c, _ := catalog.New(catalog.Options{})
	if err := c.Put(&catalog.Record{}); err == nil {
		t.Fatalf("keyless record must fail")
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	c, _ := catalog.New(catalog.Options{})
	if err := c.Put(record(t, "dpp", "urn:a")); err != nil {
		t.Fatalf("put err: %v", err)
	}
	if err := c.Delete(ctx, "dpp"); err != nil {
		t.Fatalf("delete err: %v", err)
	}
	if err := c.Delete(ctx, "dpp"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLatency_HonorsCancellation(t *testing.T) {
	c, _ := catalog.New(catalog.Options{Latency: time.Second})
	if err := c.Put(record(t, "dpp", "urn:a")); err != nil {
		t.Fatalf("put err: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Get(ctx, "dpp"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel2()
	start := time.Now()
	_, err := c.Get(ctx2, "dpp")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Fatalf("read did not abort on cancellation")
	}
}
