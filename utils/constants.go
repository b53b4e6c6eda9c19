// File: utils/constants.go
package utils

import "time"

// RevokedTokenPrefix is the prefix used for Redis keys of revoked token IDs.
const RevokedTokenPrefix = "auth:revoked:"

// AvailabilityCachePrefix is the prefix for cached availability answers.
const AvailabilityCachePrefix = "availability:"

// AvailabilityCacheTTL bounds how stale a cached availability answer can be.
const AvailabilityCacheTTL = time.Minute

// BookingLockPrefix is the prefix for per-interval booking locks.
const BookingLockPrefix = "booking:lock:"

// BookingLockTTL is how long a booking lock is held if its owner never releases it.
const BookingLockTTL = 10 * time.Second
