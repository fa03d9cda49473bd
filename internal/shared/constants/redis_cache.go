package constants

import (
	"time"
)

// Redis key layout: livelens:{module}:{operation}:{identifier}

const (
	CACHE_PREFIX = "livelens"
)

// ================== SEARCH ==================

// Search result pages, keyed by entity and a hash of the resolved query plan.
const (
	CACHE_KEY_SEARCH = CACHE_PREFIX + ":search:" // + entity:hash
)

const (
	TTL_SEARCH_DEFAULT = 2 * time.Minute
)

// ================== RATE LIMITING ==================

const (
	RATE_LIMIT_PREFIX = CACHE_PREFIX + ":ratelimit:" // + type:client
)

// ================== HELPERS ==================

// BuildSearchKey returns the cache key of one search page
func BuildSearchKey(entity, hash string) string {
	return CACHE_KEY_SEARCH + entity + ":" + hash
}

// BuildSearchPattern matches every cached page of an entity
func BuildSearchPattern(entity string) string {
	return CACHE_KEY_SEARCH + entity + ":*"
}

func BuildRateLimitKey(limitType, client string) string {
	return RATE_LIMIT_PREFIX + limitType + ":" + client
}
