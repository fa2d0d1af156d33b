package cache

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/zeptools/invoicegen/db/kvdb"
	"github.com/zeptools/invoicegen/sec"
)

// fakeKVClient - in-memory stand-in for the Redis client.
type fakeKVClient struct {
	store       map[string]string
	expireCalls int
}

var _ kvdb.Client = (*fakeKVClient)(nil)

func newFakeKVClient() *fakeKVClient {
	return &fakeKVClient{store: make(map[string]string)}
}

func (c *fakeKVClient) Init() error      { return nil }
func (c *fakeKVClient) Close() error     { return nil }
func (c *fakeKVClient) GetHandle() any   { return c.store }
func (c *fakeKVClient) GetConf() *kvdb.Conf {
	return &kvdb.Conf{Type: "fake"}
}

func (c *fakeKVClient) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.store[key]
	return ok, nil
}

func (c *fakeKVClient) Delete(ctx context.Context, keys ...string) (int64, error) {
	var n int64
	for _, key := range keys {
		if _, ok := c.store[key]; ok {
			delete(c.store, key)
			n++
		}
	}
	return n, nil
}

func (c *fakeKVClient) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	c.expireCalls++
	_, ok := c.store[key]
	return ok, nil
}

func (c *fakeKVClient) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	c.store[key] = value.(string)
	return nil
}

func (c *fakeKVClient) Get(ctx context.Context, key string) (string, bool, error) {
	val, ok := c.store[key]
	return val, ok, nil
}

func newTestCache(t *testing.T, kv kvdb.Client) *RenderCache {
	t.Helper()
	cipher, err := sec.NewXChaCha20Poly1305Cipher(bytes.Repeat([]byte{3}, 32))
	if err != nil {
		t.Fatalf("cipher: %v", err)
	}
	return NewRenderCache(kv, cipher, time.Minute)
}

func TestRenderCacheRoundTrip(t *testing.T) {
	kv := newFakeKVClient()
	c := newTestCache(t, kv)
	ctx := context.Background()

	body := []byte(`{"invoiceNumber":"INV-001"}`)
	pdfBytes := []byte("%PDF-1.3 rendered")

	if _, found := c.Get(ctx, body); found {
		t.Fatal("empty cache should miss")
	}
	c.Put(ctx, body, pdfBytes)
	got, found := c.Get(ctx, body)
	if !found {
		t.Fatal("expected cache hit after Put")
	}
	if !bytes.Equal(got, pdfBytes) {
		t.Fatalf("expected %q, got %q", pdfBytes, got)
	}
}

func TestRenderCacheHitRefreshesTTL(t *testing.T) {
	kv := newFakeKVClient()
	c := newTestCache(t, kv)
	ctx := context.Background()

	body := []byte("body")
	c.Put(ctx, body, []byte("%PDF-1.3 rendered"))
	before := kv.expireCalls
	if _, found := c.Get(ctx, body); !found {
		t.Fatal("expected cache hit")
	}
	if kv.expireCalls != before+1 {
		t.Fatal("a hit should refresh the entry's expiration")
	}
}

func TestRenderCachePutKeepsFirstWriter(t *testing.T) {
	kv := newFakeKVClient()
	c := newTestCache(t, kv)
	ctx := context.Background()

	body := []byte("body")
	first := []byte("%PDF-1.3 first render")
	c.Put(ctx, body, first)
	c.Put(ctx, body, []byte("%PDF-1.3 second render"))

	got, found := c.Get(ctx, body)
	if !found {
		t.Fatal("expected cache hit")
	}
	if !bytes.Equal(got, first) {
		t.Fatalf("expected the first writer's bytes, got %q", got)
	}
}

func TestRenderCacheKeyedByBody(t *testing.T) {
	kv := newFakeKVClient()
	c := newTestCache(t, kv)
	ctx := context.Background()

	c.Put(ctx, []byte(`{"invoiceNumber":"INV-001"}`), []byte("first"))
	if _, found := c.Get(ctx, []byte(`{"invoiceNumber":"INV-002"}`)); found {
		t.Fatal("a different body must not hit")
	}
}

func TestRenderCacheValuesSealedAtRest(t *testing.T) {
	kv := newFakeKVClient()
	c := newTestCache(t, kv)
	ctx := context.Background()

	pdfBytes := []byte("%PDF-1.3 rendered")
	c.Put(ctx, []byte("body"), pdfBytes)
	for _, stored := range kv.store {
		if bytes.Contains([]byte(stored), pdfBytes) {
			t.Fatal("stored value must not contain plaintext PDF bytes")
		}
	}
}

func TestRenderCacheDropsCorruptEntries(t *testing.T) {
	kv := newFakeKVClient()
	c := newTestCache(t, kv)
	ctx := context.Background()

	body := []byte("body")
	c.Put(ctx, body, []byte("%PDF-1.3 rendered"))
	for key := range kv.store {
		kv.store[key] = "garbage"
	}
	if _, found := c.Get(ctx, body); found {
		t.Fatal("corrupt entry must miss")
	}
	if len(kv.store) != 0 {
		t.Fatal("corrupt entry should have been deleted")
	}
}
