package utils

import (
	"context"
	"crypto/rand"
	"math/big"
	"sync"
	"time"
)

type codeEntry struct {
	code      string
	expiresAt time.Time
}

var (
	codeStore   = map[string]codeEntry{}
	codeStoreMu sync.Mutex
)

// GenerateVerificationCode creates a numeric code with the given length.
func GenerateVerificationCode(n int) string {
	if n <= 0 {
		n = 6
	}
	digits := make([]byte, n)
	for i := 0; i < n; i++ {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			v = big.NewInt(time.Now().UnixNano() % 10)
		}
		digits[i] = byte('0' + v.Int64())
	}
	return string(digits)
}

func codeKey(email string) string {
	return "signup:code:" + email
}

// SaveCode stores a verification code for an email with a TTL. Redis is
// preferred; memory is the single-instance fallback.
func SaveCode(email, code string, ttl time.Duration) {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rc.Set(ctx, codeKey(email), code, ttl).Err(); err == nil {
			return
		}
	}
	codeStoreMu.Lock()
	codeStore[email] = codeEntry{code: code, expiresAt: time.Now().Add(ttl)}
	codeStoreMu.Unlock()
}

// VerifyAndConsumeCode checks a code and consumes it regardless of match, so
// a stored code cannot be brute forced across attempts.
func VerifyAndConsumeCode(email, code string) bool {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if val, err := rc.GetDel(ctx, codeKey(email)).Result(); err == nil {
			return val == code
		}
	}
	codeStoreMu.Lock()
	defer codeStoreMu.Unlock()
	entry, ok := codeStore[email]
	if !ok {
		return false
	}
	delete(codeStore, email)
	if time.Now().After(entry.expiresAt) {
		return false
	}
	return entry.code == code
}

// EmailCooldownTrySet sets a cooldown key before sending a code. Returns
// false while a previous send is still cooling down.
func EmailCooldownTrySet(email string, cooldown time.Duration) bool {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if ok, err := rc.SetNX(ctx, "signup:cooldown:"+email, "1", cooldown).Result(); err == nil {
			return ok
		}
	}
	memKey := "cooldown:" + email
	codeStoreMu.Lock()
	defer codeStoreMu.Unlock()
	if entry, ok := codeStore[memKey]; ok && time.Now().Before(entry.expiresAt) {
		return false
	}
	codeStore[memKey] = codeEntry{code: "1", expiresAt: time.Now().Add(cooldown)}
	return true
}
