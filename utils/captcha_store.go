package utils

import (
	"context"
	"time"

	"github.com/mojocn/base64Captcha"
)

// redisCaptchaStore implements base64Captcha.Store backed by Redis so captcha
// state is shared behind a load balancer. Every operation falls back to the
// library's in-memory store when Redis misbehaves.
type redisCaptchaStore struct {
	ttl time.Duration
	mem base64Captcha.Store
}

func NewRedisCaptchaStore(ttl time.Duration) base64Captcha.Store {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &redisCaptchaStore{ttl: ttl, mem: base64Captcha.DefaultMemStore}
}

func (s *redisCaptchaStore) key(id string) string {
	return "captcha:" + id
}

// Set stores the captcha value with TTL.
func (s *redisCaptchaStore) Set(id string, value string) error {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rc.Set(ctx, s.key(id), value, s.ttl).Err(); err == nil {
			return nil
		}
	}
	return s.mem.Set(id, value)
}

// Get retrieves the value and optionally clears it.
func (s *redisCaptchaStore) Get(id string, clear bool) string {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		key := s.key(id)
		if clear {
			if v, err := rc.GetDel(ctx, key).Result(); err == nil {
				return v
			}
		} else if v, err := rc.Get(ctx, key).Result(); err == nil {
			return v
		}
	}
	return s.mem.Get(id, clear)
}

// Verify compares the answer and optionally clears the stored value.
func (s *redisCaptchaStore) Verify(id, answer string, clear bool) bool {
	v := s.Get(id, clear)
	return v != "" && v == answer
}
