// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// RoomChannelPrefix is the Redis Pub/Sub channel prefix for live room streams.
const RoomChannelPrefix = "room:"

// VerifyOTPPrefix and ResetOTPPrefix key the two OTP flows.
const (
	VerifyOTPPrefix = "verify:"
	ResetOTPPrefix  = "reset:"
)

// OTPTTL is how long a verification code stays valid.
const OTPTTL = 10 * time.Minute
