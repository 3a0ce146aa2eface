package cache

import (
	"context"
	"time"
)

// Cache is the local cache surface used for server-owned collections
// (contacts, SOS config) between refetches. The server stays the source of
// truth; entries exist only to avoid refetching within a session.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) bool
	Clear(ctx context.Context) error
	Close() error
}

// Well-known cache keys.
const (
	KeySOSContacts = "sos:contacts"
	KeySOSConfig   = "sos:config"
	KeyContacts    = "contacts"
	KeyProfile     = "profile"
)
