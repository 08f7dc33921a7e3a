package auth

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fitnease/tracking/internal/telemetry/metrics"
	"github.com/fitnease/tracking/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/blake2b"
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrAuthUnavailable = errors.New("authentication service unavailable")
)

const (
	DefaultTimeout  = 10 * time.Second
	DefaultCacheTTL = 5 * time.Minute

	tokenKeyPrefix = "auth-token::"
	localCacheTTL  = 30 * time.Second
	localCacheSize = 10 * 1024 * 1024
)

// User is the authenticated caller as reported by the auth service.
type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name,omitempty"`
	FitnessLevel string `json:"fitness_level,omitempty"`
}

type TokenValidatorParams struct {
	AuthServiceURL string
	HttpClient     *http.Client
	Timeout        time.Duration
	// RedisClient is optional, without it only the in-process cache is used.
	RedisClient    *redis.Client
	CacheTTL       time.Duration
	MetricsManager *metrics.Manager
}

// TokenValidator checks bearer tokens against the auth service. Valid tokens are
// cached in process and in redis, keyed by the token hash. Rejected tokens are never cached.
type TokenValidator struct {
	authServiceURL string
	httpClient     *http.Client
	timeout        time.Duration
	localCache     *freecache.Cache
	redisClient    *redis.Client
	cacheTTL       time.Duration
	metricsManager *metrics.Manager
}

func NewTokenValidator(params TokenValidatorParams) *TokenValidator {
	if params.Timeout <= 0 {
		params.Timeout = DefaultTimeout
	}
	if params.CacheTTL <= 0 {
		params.CacheTTL = DefaultCacheTTL
	}
	if params.HttpClient == nil {
		params.HttpClient = http.DefaultClient
	}

	return &TokenValidator{
		authServiceURL: strings.TrimSuffix(params.AuthServiceURL, "/"),
		httpClient:     params.HttpClient,
		timeout:        params.Timeout,
		localCache:     freecache.NewCache(localCacheSize),
		redisClient:    params.RedisClient,
		cacheTTL:       params.CacheTTL,
		metricsManager: params.MetricsManager,
	}
}

func (v *TokenValidator) Validate(ctx context.Context, token string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.validateToken")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if token == "" {
		return nil, ErrInvalidToken
	}

	key := tokenCacheKey(token)
	if user := v.fromLocalCache(key); user != nil {
		v.countLookup("local")
		return user, nil
	}

	if user := v.fromRedis(ctx, key); user != nil {
		v.countLookup("redis")
		v.setLocalCache(key, user)
		return user, nil
	}

	user, err := v.fetchUser(ctx, token)
	if err != nil {
		return nil, err
	}
	v.countLookup("auth_service")

	v.setLocalCache(key, user)
	v.setRedis(ctx, key, user)

	return user, nil
}

func (v *TokenValidator) fetchUser(ctx context.Context, token string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.authServiceURL+"/api/auth/user", nil)
	if err != nil {
		return nil, fmt.Errorf("new auth request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthUnavailable, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrAuthUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warnf("token validation failed, auth service status %d: %s", resp.StatusCode, respBytes)
		return nil, ErrInvalidToken
	}

	var user User
	if err := json.Unmarshal(respBytes, &user); err != nil {
		return nil, fmt.Errorf("%w: unmarshal user: %w", ErrAuthUnavailable, err)
	}

	log.Debugf("token validated for user %d [%s]", user.ID, user.Email)
	return &user, nil
}

func (v *TokenValidator) fromLocalCache(key string) *User {
	userBytes, err := v.localCache.Get([]byte(key))
	if err != nil {
		return nil
	}
	var user User
	if err := json.Unmarshal(userBytes, &user); err != nil {
		log.Errorf("unmarshal cached auth user: %s", err)
		v.localCache.Del([]byte(key))
		return nil
	}
	return &user
}

func (v *TokenValidator) setLocalCache(key string, user *User) {
	userBytes, err := json.Marshal(user)
	if err != nil {
		log.Errorf("marshal auth user %d: %s", user.ID, err)
		return
	}
	ttl := min(localCacheTTL, v.cacheTTL)
	if err := v.localCache.Set([]byte(key), userBytes, int(ttl.Seconds())); err != nil {
		log.Errorf("set local auth cache for user %d: %s", user.ID, err)
	}
}

func (v *TokenValidator) fromRedis(ctx context.Context, key string) *User {
	if v.redisClient == nil {
		return nil
	}

	cmd := v.redisClient.Get(ctx, key)
	if err := cmd.Err(); err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warnf("get auth token from redis: %s", err)
		}
		return nil
	}

	var user User
	if err := json.Unmarshal([]byte(cmd.Val()), &user); err != nil {
		log.Errorf("unmarshal auth user from redis: %s", err)
		return nil
	}
	return &user
}

func (v *TokenValidator) setRedis(ctx context.Context, key string, user *User) {
	if v.redisClient == nil {
		return
	}

	userBytes, err := json.Marshal(user)
	if err != nil {
		log.Errorf("marshal auth user %d: %s", user.ID, err)
		return
	}
	if err := v.redisClient.Set(ctx, key, string(userBytes), v.cacheTTL).Err(); err != nil {
		log.Warnf("set auth token in redis for user %d: %s", user.ID, err)
	}
}

func (v *TokenValidator) countLookup(source string) {
	if v.metricsManager != nil {
		v.metricsManager.CounterAuthCacheLookups.WithLabelValues(source).Inc()
	}
}

func tokenCacheKey(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return tokenKeyPrefix + hex.EncodeToString(sum[:])
}
