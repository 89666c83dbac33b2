package queue

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// popTimeout 限定 BLPOP 单次阻塞时长，保证取消请求能被及时观察到。
const popTimeout = time.Second

// Key 返回用户队列对应的 Redis list 键。
func Key(username string) string { return "ws:" + username }

// Redis 基于 Redis list 的按用户 FIFO 队列：RPUSH 入队尾，BLPOP 出队头。
type Redis struct {
	client *redis.Client
}

func NewRedis(addr, password string) *Redis {
	return &Redis{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})}
}

func (r *Redis) Push(ctx context.Context, username string, data []byte) error {
	return r.client.RPush(ctx, Key(username), data).Err()
}

// Pop 取出队头一条消息；超时没有消息时返回 (nil, nil)，这不是错误。
func (r *Redis) Pop(ctx context.Context, username string) ([]byte, error) {
	res, err := r.client.BLPop(ctx, popTimeout, Key(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	// BLPOP 返回 [key, value]
	if len(res) < 2 {
		return nil, nil
	}
	return []byte(res[1]), nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
