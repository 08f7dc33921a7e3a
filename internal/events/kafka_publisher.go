package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/fitnease/tracking/internal/progression"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

var (
	ErrPublisherClosed = errors.New("promotion publisher closed")
	ErrQueueFull       = errors.New("promotion publisher queue full")
)

const (
	EventTypeHeader        = "event_type"
	EventTypeLevelPromoted = "fitness_level_promoted"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisherConfig struct {
	Brokers []string
	Topic   string
	// MaxAttempts per message, defaults to 3.
	MaxAttempts int
	// WriteTimeout per attempt, defaults to 10s.
	WriteTimeout time.Duration
	// QueueSize is the number of events buffered before OnPromotion starts rejecting, defaults to 256.
	QueueSize int
}

// KafkaPublisher publishes promotion events to a kafka topic. Events are queued and
// written by a single background worker, so a slow broker never blocks a promotion.
// Messages are keyed by user id, which keeps the events of one user ordered.
type KafkaPublisher struct {
	writer       messageWriter
	maxAttempts  int
	writeTimeout time.Duration
	backoff      time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan kafka.Message
	done   chan struct{}
}

var _ progression.PromotionListener = (*KafkaPublisher)(nil)

func NewKafkaPublisher(cfg KafkaPublisherConfig) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka: at least one broker required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka: topic required")
	}
	cfg = withDefaults(cfg)

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafka.RequireOne,
	}

	return newKafkaPublisher(writer, cfg), nil
}

func withDefaults(cfg KafkaPublisherConfig) KafkaPublisherConfig {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	return cfg
}

func newKafkaPublisher(writer messageWriter, cfg KafkaPublisherConfig) *KafkaPublisher {
	cfg = withDefaults(cfg)
	p := &KafkaPublisher{
		writer:       writer,
		maxAttempts:  cfg.MaxAttempts,
		writeTimeout: cfg.WriteTimeout,
		backoff:      100 * time.Millisecond,
		queue:        make(chan kafka.Message, cfg.QueueSize),
		done:         make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *KafkaPublisher) OnPromotion(_ context.Context, event progression.PromotionEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal promotion event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.Itoa(event.UserID)),
		Value: value,
		Time:  event.PromotedAt,
		Headers: []kafka.Header{
			{Key: EventTypeHeader, Value: []byte(EventTypeLevelPromoted)},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	select {
	case p.queue <- msg:
		return nil
	default:
		return fmt.Errorf("%w: event %s for user %d dropped", ErrQueueFull, event.ID, event.UserID)
	}
}

func (p *KafkaPublisher) run() {
	defer close(p.done)
	for msg := range p.queue {
		if err := p.publish(msg); err != nil {
			log.Errorf("publish promotion event for user %s: %s", msg.Key, err)
		}
	}
}

func (p *KafkaPublisher) publish(msg kafka.Message) error {
	var lastErr error
	backoff := p.backoff
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
		err := p.writer.WriteMessages(ctx, msg)
		cancel()
		if err == nil {
			log.Debugf("promotion event for user %s published", msg.Key)
			return nil
		}

		lastErr = err
		log.Warnf("publish promotion event, attempt %d/%d: %s", attempt, p.maxAttempts, err)
		if attempt < p.maxAttempts {
			time.Sleep(backoff)
			backoff = min(backoff*2, 2*time.Second)
		}
	}
	return fmt.Errorf("publish failed after %d attempts: %w", p.maxAttempts, lastErr)
}

// Close stops accepting events, flushes the queue and closes the writer.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.writer.Close()
}
