package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== TEMP CREDENTIAL ====================

// GenerateTempCredential returns a URL-safe random token for guest-checkout
// accounts. 16 bytes gives 128 bits of entropy.
func GenerateTempCredential() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate temp credential: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// ==================== RECEIPT REFERENCE ====================

// GenerateReceiptRef builds the receipt string sent to the gateway.
// The gateway caps receipts at 40 chars, so the package id is truncated
// before the timestamp is appended.
func GenerateReceiptRef(packageID string) string {
	const maxLen = 40

	ts := fmt.Sprintf("%d", time.Now().Unix())
	// "trip_" + id + "_" + unix seconds
	idPart := packageID
	if budget := maxLen - len("trip_") - 1 - len(ts); len(idPart) > budget {
		idPart = idPart[:budget]
	}

	return fmt.Sprintf("trip_%s_%s", idPart, ts)
}
