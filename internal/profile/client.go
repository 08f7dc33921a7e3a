package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fitnease/tracking/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var (
	ErrUpstreamUnavailable = errors.New("profile store unavailable")
	ErrMalformedSnapshot   = errors.New("malformed profile snapshot")
)

const DefaultTimeout = 10 * time.Second

// MetricsIncrement is applied by the profile store as atomic adds, so two concurrent
// workout completions never lose an increment.
type MetricsIncrement struct {
	IncrementWorkouts         bool   `json:"increment_workouts,omitempty"`
	AddMinutes                int    `json:"add_minutes,omitempty"`
	IncrementAdvancedWorkouts bool   `json:"increment_advanced_workouts,omitempty"`
	IncrementGroupWorkouts    bool   `json:"increment_group_workouts,omitempty"`
	LastWorkoutDate           string `json:"last_workout_date"`
}

type StreakUpdate struct {
	IncrementStreak bool `json:"increment_streak,omitempty"`
	ResetStreak     bool `json:"reset_streak,omitempty"`
}

type fitnessLevelUpdate struct {
	FitnessLevel          string `json:"fitness_level"`
	FitnessLevelUpdatedAt string `json:"fitness_level_updated_at"`
}

// Client talks to the internal users API of the auth service, which owns the
// user profile and all progression counters.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

func NewClient(baseURL string, httpClient *http.Client, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		timeout:    timeout,
	}
}

func (c *Client) Snapshot(ctx context.Context, userID int) (_ *Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "profile.snapshot")
	span.SetAttributes(attribute.Int("user.id", userID))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	respBytes, err := c.do(ctx, http.MethodGet, c.userURL(userID, ""), nil)
	if err != nil {
		return nil, err
	}

	snapshot, err := DecodeSnapshot(respBytes)
	if err != nil {
		log.Errorf("profile snapshot for user %d, decode [%s]: %s", userID, respBytes, err)
		return nil, err
	}

	return snapshot, nil
}

func (c *Client) SetFitnessLevel(ctx context.Context, userID int, level string, updatedAt time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "profile.setFitnessLevel")
	span.SetAttributes(
		attribute.Int("user.id", userID),
		attribute.String("fitness_level", level),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	body := fitnessLevelUpdate{
		FitnessLevel:          level,
		FitnessLevelUpdatedAt: updatedAt.UTC().Format(time.DateTime),
	}
	_, err = c.do(ctx, http.MethodPut, c.userURL(userID, "/fitness-level"), body)
	return err
}

func (c *Client) IncrementMetrics(ctx context.Context, userID int, inc MetricsIncrement) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "profile.incrementMetrics")
	span.SetAttributes(attribute.Int("user.id", userID))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	_, err = c.do(ctx, http.MethodPut, c.userURL(userID, "/progression-metrics"), inc)
	return err
}

func (c *Client) UpdateStreak(ctx context.Context, userID int, upd StreakUpdate) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "profile.updateStreak")
	span.SetAttributes(attribute.Int("user.id", userID))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	_, err = c.do(ctx, http.MethodPut, c.userURL(userID, "/streak"), upd)
	return err
}

func (c *Client) userURL(userID int, suffix string) string {
	return fmt.Sprintf("%s/api/internal/users/%d%s", c.baseURL, userID, suffix)
}

// do sends the request within the client timeout and returns the body of a 2xx response.
// Transport errors and non-2xx statuses are reported as ErrUpstreamUnavailable.
func (c *Client) do(ctx context.Context, method, url string, payload any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request payload: %w", err)
		}
		body = bytes.NewReader(payloadBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrUpstreamUnavailable, method, url, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %w", ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debugf("profile store %s %s -> %d: %s", method, url, resp.StatusCode, respBytes)
		return nil, fmt.Errorf("%w: %s %s: status %d", ErrUpstreamUnavailable, method, url, resp.StatusCode)
	}

	return respBytes, nil
}
