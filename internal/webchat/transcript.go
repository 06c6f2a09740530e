package webchat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	transcriptKeyPrefix = "webchat_transcript:"
	transcriptTTL       = 24 * time.Hour
	transcriptMax       = 100
)

// TranscriptMessage is one line of a widget conversation.
type TranscriptMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Body      string    `json:"body"`
	Intent    string    `json:"intent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// RedisTranscriptStore keeps the last transcriptMax lines of each session in a Redis list.
type RedisTranscriptStore struct {
	redis       *redis.Client
	tracer      trace.Tracer
	ttl         time.Duration
	maxMessages int64
}

// NewRedisTranscriptStore returns nil when redisClient is nil; a nil store records nothing.
func NewRedisTranscriptStore(redisClient *redis.Client) *RedisTranscriptStore {
	if redisClient == nil {
		return nil
	}
	return &RedisTranscriptStore{
		redis:       redisClient,
		tracer:      otel.Tracer("vendorconnect.internal.webchat.transcript"),
		ttl:         transcriptTTL,
		maxMessages: transcriptMax,
	}
}

func (s *RedisTranscriptStore) Append(ctx context.Context, sessionID string, msg TranscriptMessage) error {
	if s == nil || s.redis == nil {
		return nil
	}
	if sessionID == "" {
		return errors.New("webchat: transcript sessionID required")
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("webchat: marshal transcript message: %w", err)
	}

	ctx, span := s.tracer.Start(ctx, "webchat.transcript.append")
	defer span.End()

	key := transcriptKey(sessionID)
	pipe := s.redis.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, s.ttl)
	if s.maxMessages > 0 {
		pipe.LTrim(ctx, key, -s.maxMessages, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("webchat: append transcript message: %w", err)
	}
	return nil
}

// List returns the newest limit messages oldest first. limit <= 0 returns everything kept.
func (s *RedisTranscriptStore) List(ctx context.Context, sessionID string, limit int64) ([]TranscriptMessage, error) {
	if s == nil || s.redis == nil {
		return nil, nil
	}
	if sessionID == "" {
		return nil, errors.New("webchat: transcript sessionID required")
	}

	ctx, span := s.tracer.Start(ctx, "webchat.transcript.list")
	defer span.End()

	start := int64(0)
	if limit > 0 {
		start = -limit
	}
	raw, err := s.redis.LRange(ctx, transcriptKey(sessionID), start, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []TranscriptMessage{}, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("webchat: list transcript: %w", err)
	}

	out := make([]TranscriptMessage, 0, len(raw))
	for _, item := range raw {
		var msg TranscriptMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			span.RecordError(err)
			continue
		}
		out = append(out, msg)
	}
	return out, nil
}

func transcriptKey(sessionID string) string {
	return transcriptKeyPrefix + sessionID
}
