package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepository keeps refresh sessions in Redis.
//
//	<prefix><digest>     session JSON, expires with the session
//	<prefix>uid:<uid>    set of the identity's session digests
type RedisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisRepository uses prefix "useradmin:session:" when prefix is empty.
func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	if prefix == "" {
		prefix = "useradmin:session:"
	}
	return &RedisRepository{client: client, prefix: prefix}
}

func (r *RedisRepository) sessionKey(digest string) string { return r.prefix + digest }
func (r *RedisRepository) uidKey(uid string) string        { return r.prefix + "uid:" + uid }

func (r *RedisRepository) Create(ctx context.Context, s *Session) error {
	doc, err := json.Marshal(s)
	if err != nil {
		return err
	}
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return errors.New("sessions: session already expired")
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.sessionKey(s.RefreshToken), doc, ttl)
		if s.UID != "" {
			pipe.SAdd(ctx, r.uidKey(s.UID), s.RefreshToken)
			pipe.Expire(ctx, r.uidKey(s.UID), ttl)
		}
		return nil
	})
	return err
}

func (r *RedisRepository) GetByRefresh(ctx context.Context, digest string) (*Session, error) {
	doc, err := r.client.Get(ctx, r.sessionKey(digest)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(doc, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RedisRepository) DeleteByRefresh(ctx context.Context, digest string) error {
	s, err := r.GetByRefresh(ctx, digest)
	if err != nil {
		return err
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.sessionKey(digest))
		if s != nil && s.UID != "" {
			pipe.SRem(ctx, r.uidKey(s.UID), digest)
		}
		return nil
	})
	return err
}

func (r *RedisRepository) DeleteByUID(ctx context.Context, uid string) error {
	digests, err := r.client.SMembers(ctx, r.uidKey(uid)).Result()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(digests)+1)
	for _, d := range digests {
		keys = append(keys, r.sessionKey(d))
	}
	keys = append(keys, r.uidKey(uid))
	return r.client.Del(ctx, keys...).Err()
}
