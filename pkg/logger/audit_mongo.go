// audit_mongo.go — MongoAuditSink is an slog.Handler that persists audit
// events (login, registration, password change, order creation) to a MongoDB
// collection without touching the request hot path:
//
//   - records lacking the audit marker are ignored;
//   - accepted records are enqueued into a buffered channel, never blocking;
//   - one background goroutine drains the channel with batched InsertMany;
//   - Close() flushes and disconnects.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AuditKey marks a record as an audit event.
const AuditKey = "audit"

const (
	auditQueueSize = 1024
	auditBatchSize = 32
	auditDrainTick = 2 * time.Second
)

// auditDocument is the shape written to MongoDB.
type auditDocument struct {
	Time      time.Time `bson:"time"`
	Event     string    `bson:"event"`
	RequestID string    `bson:"request_id,omitempty"`
	Fields    bson.M    `bson:"fields,omitempty"`
}

// MongoAuditSink persists audit events asynchronously.
type MongoAuditSink struct {
	col    *mongo.Collection
	client *mongo.Client
	queue  chan auditDocument
	done   chan struct{}
	attrs  []slog.Attr
}

// NewMongoAuditSink connects to uri and writes into db's "audit_log"
// collection. The caller owns the sink and must Close() it on shutdown.
func NewMongoAuditSink(uri, db string) (*MongoAuditSink, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).
		SetConnectTimeout(5*time.Second).
		SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("audit sink: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("audit sink: ping: %w", err)
	}

	col := client.Database(db).Collection("audit_log")
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "time", Value: -1}},
	})

	s := &MongoAuditSink{
		col:    col,
		client: client,
		queue:  make(chan auditDocument, auditQueueSize),
		done:   make(chan struct{}),
	}

	go s.drain()
	return s, nil
}

func (s *MongoAuditSink) Enabled(_ context.Context, l slog.Level) bool {
	return l >= slog.LevelInfo
}

func (s *MongoAuditSink) Handle(_ context.Context, r slog.Record) error {
	doc := auditDocument{Time: r.Time, Event: r.Message, Fields: bson.M{}}

	audit := false
	collect := func(a slog.Attr) {
		switch a.Key {
		case AuditKey:
			audit, _ = a.Value.Any().(bool)
		case "request_id":
			doc.RequestID = a.Value.String()
		default:
			doc.Fields[a.Key] = a.Value.Any()
		}
	}

	for _, a := range s.attrs {
		collect(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		collect(a)
		return true
	})

	if !audit {
		return nil
	}

	// Drop rather than block when the queue is full.
	select {
	case s.queue <- doc:
	default:
	}
	return nil
}

func (s *MongoAuditSink) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(s.attrs)+len(attrs))
	merged = append(merged, s.attrs...)
	merged = append(merged, attrs...)
	return &MongoAuditSink{
		col:    s.col,
		client: s.client,
		queue:  s.queue,
		done:   s.done,
		attrs:  merged,
	}
}

func (s *MongoAuditSink) WithGroup(string) slog.Handler { return s }

func (s *MongoAuditSink) drain() {
	ticker := time.NewTicker(auditDrainTick)
	defer ticker.Stop()

	batch := make([]interface{}, 0, auditBatchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, _ = s.col.InsertMany(ctx, batch)
		cancel()
		batch = batch[:0]
	}

	for {
		select {
		case doc := <-s.queue:
			batch = append(batch, doc)
			if len(batch) >= auditBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.done:
			for len(s.queue) > 0 {
				batch = append(batch, <-s.queue)
			}
			flush()
			return
		}
	}
}

// Close flushes pending events and disconnects. Safe to call more than once.
func (s *MongoAuditSink) Close() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.client.Disconnect(ctx)
}
