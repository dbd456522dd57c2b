// Package locker реализует распределенную блокировку прогона на Redis.
// Держится вызывающей командой, а не синхронизатором: сам импорт счетов
// конкурентные запуски не исключает.
package locker

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RunLock — блокировка одного прогона через SET NX с TTL.
type RunLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRunLock создает блокировку с ключом key и временем жизни ttl.
func NewRunLock(client *redis.Client, key string, ttl time.Duration) *RunLock {
	return &RunLock{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// Acquire пытается взять блокировку. false — прогон уже идет.
func (l *RunLock) Acquire(ctx context.Context) (bool, error) {
	return l.client.SetNX(ctx, l.key, time.Now().UTC().Format(time.RFC3339), l.ttl).Result()
}

// Release снимает блокировку. TTL страхует от вечного залипания,
// если процесс умер, не дойдя сюда.
func (l *RunLock) Release(ctx context.Context) error {
	return l.client.Del(ctx, l.key).Err()
}
