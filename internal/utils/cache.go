package utils

import (
	"log"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheItem 包装缓存数据和过期时间
type cacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// GlobalCache 进程内本地缓存，用于信息流分页和排行榜等热点读取
type GlobalCache struct {
	lruCache *lru.Cache[string, cacheItem]
}

var (
	cacheInstance *GlobalCache
	cacheOnce     sync.Once
)

// GetCache 获取单例缓存实例
func GetCache() *GlobalCache {
	cacheOnce.Do(func() {
		l, err := lru.New[string, cacheItem](500)
		if err != nil {
			log.Fatalf("Failed to create LRU cache: %v", err)
		}
		cacheInstance = &GlobalCache{lruCache: l}
	})
	return cacheInstance
}

// Set 写入缓存，ttl 为有效期
func (c *GlobalCache) Set(key string, data interface{}, ttl time.Duration) {
	c.lruCache.Add(key, cacheItem{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	})
}

// Get 读取缓存，不存在或已过期返回 nil
func (c *GlobalCache) Get(key string) interface{} {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil
	}
	if time.Now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return nil
	}
	return val.Data
}

// Delete 删除指定缓存
func (c *GlobalCache) Delete(key string) {
	c.lruCache.Remove(key)
}

// Purge 清空全部缓存（测试用）
func (c *GlobalCache) Purge() {
	c.lruCache.Purge()
}
