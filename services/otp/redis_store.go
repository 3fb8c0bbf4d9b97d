package otp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps OTP records in Redis so multiple instances share one
// registry. The key TTL enforces expiry server-side; the ExpiresAt field in
// the record stays authoritative for the error reported to the client.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string, db int) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
	}
}

func (s *RedisStore) Get(ctx context.Context, email string) (*Record, error) {
	data, err := s.client.Get(ctx, otpKey(email)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode otp record: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) Put(ctx context.Context, email string, rec Record, ttl time.Duration) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode otp record: %w", err)
	}
	return s.client.Set(ctx, otpKey(email), payload, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, otpKey(email)).Err()
}

func otpKey(email string) string {
	return "otp:login:" + email
}
