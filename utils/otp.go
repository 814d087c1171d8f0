package utils

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"

	"go.uber.org/zap"
)

// generateSecureOTP generates a secure random OTP of the specified length.
// It returns a base32 encoded string (without padding) truncated to the desired length.
func generateSecureOTP(length int) (string, error) {
	numBytes := (length*5 + 7) / 8 // Calculate the required number of bytes.
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	otp := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(otp) > length {
		otp = otp[:length]
	}
	return otp, nil
}

// IssueOTP generates a 6-character code for the given flow (verify/reset),
// caches it under the user's id with a short TTL, and returns it. Delivery
// is the caller's concern; the code never leaves the OTP cache otherwise.
func IssueOTP(ctx context.Context, prefix, userID string) (string, error) {
	otp, err := generateSecureOTP(6)
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}

	client := GetOTPCacheClient()
	key := prefix + userID
	if err := client.Set(ctx, key, otp, OTPTTL).Err(); err != nil {
		GetLogger().Error("Failed to cache OTP", zap.Error(err))
		return "", NewStorageError("cache otp", err)
	}
	return otp, nil
}

// CheckOTP verifies a submitted code against the cached one and consumes it
// on success. A missing or mismatched code fails validation.
func CheckOTP(ctx context.Context, prefix, userID, submitted string) error {
	client := GetOTPCacheClient()
	key := prefix + userID

	stored, err := client.Get(ctx, key).Result()
	if err != nil {
		return NewValidationError("verification code expired or not found")
	}
	if stored != submitted {
		return NewValidationError("verification code does not match")
	}
	if err := client.Del(ctx, key).Err(); err != nil {
		GetLogger().Warn("Failed to consume OTP", zap.Error(err))
	}
	return nil
}
