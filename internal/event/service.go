package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/storefront/internal/storage/mq"
)

// Service consumes cart events.
type Service struct {
	logger     *slog.Logger
	mqConsumer mq.Consumer
}

// New creates a new event service.
func New(
	logger *slog.Logger,
	mqConsumer mq.Consumer,
) *Service {
	return &Service{
		logger:     logger.With(slog.String("service", "event")),
		mqConsumer: mqConsumer,
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	if err := s.mqConsumer.RegisterHandler(TopicCartItemAdded, s.consumeCartItemAdded); err != nil {
		return nil, fmt.Errorf("register cart item added event handler: %w", err)
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	return CleanupFunc(mqCleanup), nil
}

func (s *Service) consumeCartItemAdded(ctx context.Context, _ string, payload []byte) error {
	var ev CartItemAddedEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return fmt.Errorf("unmarshal cart item added event: %w", err)
	}

	if err := s.handleCartItemAddedEvent(ctx, ev); err != nil {
		return fmt.Errorf("handle cart item added event: %w", err)
	}

	return nil
}
