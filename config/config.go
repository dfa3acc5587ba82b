package config

import (
	"fmt"
	"os"
	"time"
)

const DEFAULT_PORT string = "5000"

// TOKEN_TTL bounds the lifetime of issued JWTs.
const TOKEN_TTL time.Duration = 8 * time.Hour

// STORE_TIMEOUT bounds every single store operation so no request blocks
// indefinitely; on expiry the operation surfaces as a transient failure.
const STORE_TIMEOUT time.Duration = 5 * time.Second

// RESERVE_RETRIES is the number of extra attempts the booking engine makes
// when the seat reservation fails transiently.
const RESERVE_RETRIES uint64 = 3

func GetSecret(key string) (string, error) {
	val, exist := os.LookupEnv(key)
	if exist {
		return val, nil
	}
	return "", fmt.Errorf("no env variable with key %v", key)
}

func GetSecretOrDefault(key string, fallback string) string {
	if val, err := GetSecret(key); err == nil {
		return val
	}
	return fallback
}
