package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
)

type CreateOutboxMsgParams struct {
	Topic        string
	Headers      map[string]string
	Payload      json.RawMessage
	PartitionKey *string
}

type ListUnprocessedOutboxMsgsParams struct {
	BatchSize int32
}

type ListUnprocessedOutboxMsgsResult struct {
	ID           uuid.UUID
	Topic        string
	Headers      map[string]string
	Payload      json.RawMessage
	PartitionKey *string
	CreatedAt    time.Time
}

type BulkUpdateOutboxMsgsItem struct {
	ID uuid.UUID
}

type BulkUpdateOutboxMsgsParams struct {
	Items []BulkUpdateOutboxMsgsItem
}

type OutboxMsgRepository interface {
	CreateOutboxMsg(ctx context.Context, params CreateOutboxMsgParams) error
	ListUnprocessedOutboxMsgs(ctx context.Context, params ListUnprocessedOutboxMsgsParams) ([]ListUnprocessedOutboxMsgsResult, error)
	// BulkUpdateOutboxMsgs marks messages processed and forgets them.
	BulkUpdateOutboxMsgs(ctx context.Context, params BulkUpdateOutboxMsgsParams) error
}

var _ OutboxMsgRepository = (*outboxMsgRepository)(nil)

type outboxMsg struct {
	ListUnprocessedOutboxMsgsResult
	leased bool
}

// outboxMsgRepository is an in-memory FIFO outbox. Listed messages are leased
// so a concurrent relay run cannot pick them up twice.
type outboxMsgRepository struct {
	mu   sync.Mutex
	msgs []*outboxMsg
	now  func() time.Time
}

func NewOutboxMsgRepository() OutboxMsgRepository {
	return &outboxMsgRepository{now: time.Now}
}

func (r *outboxMsgRepository) CreateOutboxMsg(_ context.Context, params CreateOutboxMsgParams) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate uuid v7: %w", err)
	}

	if !json.Valid(params.Payload) {
		return fmt.Errorf("outbox msg for topic %s: invalid json payload", params.Topic)
	}

	msg := &outboxMsg{
		ListUnprocessedOutboxMsgsResult: ListUnprocessedOutboxMsgsResult{
			ID:           id,
			Topic:        params.Topic,
			Headers:      maps.Clone(params.Headers),
			Payload:      append(json.RawMessage(nil), params.Payload...),
			PartitionKey: params.PartitionKey,
			CreatedAt:    r.now(),
		},
	}

	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()

	return nil
}

func (r *outboxMsgRepository) ListUnprocessedOutboxMsgs(
	_ context.Context,
	params ListUnprocessedOutboxMsgsParams,
) ([]ListUnprocessedOutboxMsgsResult, error) {
	if params.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", params.BatchSize)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	results := make([]ListUnprocessedOutboxMsgsResult, 0, min(int(params.BatchSize), len(r.msgs)))
	for _, msg := range r.msgs {
		if len(results) == int(params.BatchSize) {
			break
		}
		if msg.leased {
			continue
		}
		msg.leased = true
		results = append(results, msg.ListUnprocessedOutboxMsgsResult)
	}

	return results, nil
}

func (r *outboxMsgRepository) BulkUpdateOutboxMsgs(_ context.Context, params BulkUpdateOutboxMsgsParams) error {
	if len(params.Items) == 0 {
		return nil
	}

	processed := make(map[uuid.UUID]struct{}, len(params.Items))
	for _, item := range params.Items {
		processed[item.ID] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.msgs[:0]
	for _, msg := range r.msgs {
		if _, ok := processed[msg.ID]; ok {
			continue
		}
		kept = append(kept, msg)
	}
	clear(r.msgs[len(kept):])
	r.msgs = kept

	return nil
}
