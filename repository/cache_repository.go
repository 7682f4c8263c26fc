package repository

import "time"

// CacheRepository stores serialized recommendations keyed by request digest.
// Entries expire: a recommendation is only valid for the day it was computed.
type CacheRepository interface {
	Get(key string) (string, bool)
	Set(key string, value string, ttl time.Duration) error
}
