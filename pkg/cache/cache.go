// Package cache provides a small string-keyed cache abstraction. The message
// pipeline uses it for short-lived profile snapshots; any store with get,
// set-with-TTL and delete fits.
package cache

import "time"

// Cache defines the interface for caching services.
type Cache interface {
	Get(key string) (string, error)
	Set(key string, value interface{}, expiration time.Duration) error
	Delete(key string) error
}
