// Package cache holds rendered PDFs for a short time so repeated downloads
// of the same submission skip re-rendering. Entries are content-addressed
// (SHA-256 of the raw request body) and expire on their own; this is not an
// invoice store - nothing here can be listed or queried.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/zeptools/invoicegen/db/kvdb"
	"github.com/zeptools/invoicegen/sec"
)

const keyPrefix = "pdfgen:"

// RenderCache - sealed PDF bytes in a KV store with a TTL.
// Rendered invoices carry billing data, so entries are ciphertext at rest.
// Cache failures are never surfaced: a broken cache degrades to re-rendering.
type RenderCache struct {
	kv     kvdb.Client
	cipher *sec.XChaCha20Poly1305Cipher
	ttl    time.Duration
}

func NewRenderCache(kv kvdb.Client, cipher *sec.XChaCha20Poly1305Cipher, ttl time.Duration) *RenderCache {
	return &RenderCache{kv: kv, cipher: cipher, ttl: ttl}
}

func (c *RenderCache) key(body []byte) string {
	return keyPrefix + sec.HashHexSHA256(string(body))
}

// Get returns the cached PDF for this request body, if present and intact.
func (c *RenderCache) Get(ctx context.Context, body []byte) ([]byte, bool) {
	key := c.key(body)
	sealed, found, err := c.kv.Get(ctx, key)
	if err != nil {
		log.Printf("[ERROR][Cache] get %s: %v", key, err)
		return nil, false
	}
	if !found {
		return nil, false
	}
	pdfBytes, err := c.cipher.DecodeDecrypt(sealed)
	if err != nil {
		// tampered or sealed with an old key. drop it
		log.Printf("[ERROR][Cache] unseal %s: %v", key, err)
		if _, delErr := c.kv.Delete(ctx, key); delErr != nil {
			log.Printf("[ERROR][Cache] delete %s: %v", key, delErr)
		}
		return nil, false
	}
	// sliding expiration: a hit keeps the entry alive for another ttl
	if _, err := c.kv.Expire(ctx, key, c.ttl); err != nil {
		log.Printf("[ERROR][Cache] expire %s: %v", key, err)
	}
	return pdfBytes, true
}

// Put seals and stores the PDF for this request body.
func (c *RenderCache) Put(ctx context.Context, body []byte, pdfBytes []byte) {
	key := c.key(body)
	// concurrent renders of the same body race here; first writer wins
	if exists, err := c.kv.Exists(ctx, key); err == nil && exists {
		return
	}
	sealed, err := c.cipher.EncryptEncode(pdfBytes)
	if err != nil {
		log.Printf("[ERROR][Cache] seal: %v", err)
		return
	}
	if err := c.kv.Set(ctx, key, sealed, c.ttl); err != nil {
		log.Printf("[ERROR][Cache] set %s: %v", key, err)
	}
}
