package kvdb

import (
	"context"
	"time"
)

// Client - the key-value surface the render cache needs. Values are opaque
// strings; expiration is the backend's responsibility.
type Client interface {
	Init() error
	Close() error
	GetHandle() any // generic handle. use with runtime type assertion
	GetConf() *Conf

	//---- Key Ops ----

	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, keys ...string) (int64, error)
	// Expire sets/updates expiration for a key
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) // found & updated, err

	//---- Single-value Ops ----

	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error) // val, found, err
}
