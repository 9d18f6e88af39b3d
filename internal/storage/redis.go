package storage

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// Redis persiste os registros como blobs JSON sem TTL (estado durável da
// sessão, não cache).
type Redis struct {
	R *redis.Client
}

func NewRedis(r *redis.Client) *Redis { return &Redis{R: r} }

func key(k string) string { return "dashboard:state:" + k }

func (s *Redis) Load(ctx context.Context, k string, dst any) (bool, error) {
	b, err := s.R.Get(ctx, key(k)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

func (s *Redis) Save(ctx context.Context, k string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.R.Set(ctx, key(k), b, 0).Err()
}
