package middleware

import (
	"hash/fnv"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/conektaolatam-netizen/conektao-sub003/internal/domain/dto"
	"github.com/conektaolatam-netizen/conektao-sub003/internal/i18n"
)

// defaultNumShards spreads visitors over enough shards that lock contention
// stays negligible at the service's request rates.
const defaultNumShards = 16

// window counts requests for one identifier inside the current fixed window.
type window struct {
	count     int
	startedAt time.Time
}

type rateLimiterShard struct {
	mu      sync.Mutex
	windows map[string]*window
}

// ShardedRateLimiter is a fixed-window limiter keyed by client identifier.
// Identifiers are hashed onto shards so concurrent requests rarely share a
// lock. Windows reset lazily on the next request after they lapse; a
// background sweep reclaims identifiers that stopped sending.
type ShardedRateLimiter struct {
	shards    []*rateLimiterShard
	numShards int
	rate      int
	window    time.Duration
	stopCh    chan struct{}
}

// RateLimiter is an alias for ShardedRateLimiter.
type RateLimiter = ShardedRateLimiter

// NewRateLimiter creates a limiter with the default shard count.
func NewRateLimiter(rate int, window time.Duration) *ShardedRateLimiter {
	return NewShardedRateLimiter(rate, window, defaultNumShards)
}

// NewShardedRateLimiter creates a limiter with an explicit shard count.
func NewShardedRateLimiter(rate int, windowSize time.Duration, numShards int) *ShardedRateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}

	rl := &ShardedRateLimiter{
		shards:    make([]*rateLimiterShard, numShards),
		numShards: numShards,
		rate:      rate,
		window:    windowSize,
		stopCh:    make(chan struct{}),
	}
	for i := range rl.shards {
		rl.shards[i] = &rateLimiterShard{windows: make(map[string]*window)}
	}

	go rl.sweepLoop()
	return rl
}

func (rl *ShardedRateLimiter) shardFor(identifier string) *rateLimiterShard {
	h := fnv.New32a()
	h.Write([]byte(identifier))
	return rl.shards[h.Sum32()%uint32(rl.numShards)]
}

// checkRateLimit consumes one request from the identifier's window and
// reports whether it fit, along with the remaining budget.
func (rl *ShardedRateLimiter) checkRateLimit(identifier string) (allowed bool, remaining int) {
	shard := rl.shardFor(identifier)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	now := time.Now()
	w := shard.windows[identifier]
	if w == nil || now.Sub(w.startedAt) > rl.window {
		shard.windows[identifier] = &window{count: 1, startedAt: now}
		return true, rl.rate - 1
	}

	if w.count >= rl.rate {
		return false, 0
	}
	w.count++
	return true, rl.rate - w.count
}

// limit applies the rate limit for the given identifier, writing the 429
// response when the budget is exhausted.
func (rl *ShardedRateLimiter) limit(c *gin.Context, identifier string) bool {
	allowed, remaining := rl.checkRateLimit(identifier)

	c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	if allowed {
		return true
	}

	locale := i18n.GetLocale(c)
	message := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, locale)
	c.Header("Retry-After", rl.window.String())
	c.AbortWithStatusJSON(http.StatusTooManyRequests,
		dto.NewError(dto.ErrCodeRateLimit, message).WithRequestID(GetRequestID(c)))
	return false
}

// RateLimit limits requests per client IP.
func (rl *ShardedRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit(c, "ip:"+c.ClientIP()) {
			c.Next()
		}
	}
}

// UserRateLimit limits requests per authenticated user, falling back to the
// client IP for unauthenticated requests.
func (rl *ShardedRateLimiter) UserRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit(c, rl.userIdentifier(c)) {
			c.Next()
		}
	}
}

func (rl *ShardedRateLimiter) userIdentifier(c *gin.Context) string {
	if userID, exists := c.Get("user_id"); exists {
		if id, ok := userID.(primitive.ObjectID); ok {
			return "user:" + id.Hex()
		}
	}
	return "ip:" + c.ClientIP()
}

func (rl *ShardedRateLimiter) sweepLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stopCh:
			return
		}
	}
}

// sweep drops identifiers whose window lapsed two window lengths ago. One
// window of slack keeps an identifier's entry alive across the boundary so
// steady senders are not repeatedly re-allocated.
func (rl *ShardedRateLimiter) sweep() {
	now := time.Now()
	cutoff := rl.window * 2

	for _, shard := range rl.shards {
		shard.mu.Lock()
		for id, w := range shard.windows {
			if now.Sub(w.startedAt) > cutoff {
				delete(shard.windows, id)
			}
		}
		shard.mu.Unlock()
	}
}

// Stop terminates the background sweep.
func (rl *ShardedRateLimiter) Stop() {
	close(rl.stopCh)
}

// Stats reports how many identifiers are currently tracked, in total and
// per shard.
func (rl *ShardedRateLimiter) Stats() (totalVisitors int, perShard []int) {
	perShard = make([]int, rl.numShards)
	for i, shard := range rl.shards {
		shard.mu.Lock()
		perShard[i] = len(shard.windows)
		totalVisitors += perShard[i]
		shard.mu.Unlock()
	}
	return totalVisitors, perShard
}
