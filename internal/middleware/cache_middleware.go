package middleware

import (
	"github.com/eventahq/eventa-api/internal/cache"
	"github.com/gin-gonic/gin"
)

func CacheMiddleware(responseCache *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("cache", responseCache)
		c.Next()
	}
}

func GetCache(c *gin.Context) *cache.Cache {
	value, exists := c.Get("cache")
	if !exists {
		return nil
	}
	responseCache, _ := value.(*cache.Cache)
	return responseCache
}
