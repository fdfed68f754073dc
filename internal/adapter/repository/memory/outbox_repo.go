package memory

import (
	"context"
	"time"

	"github.com/bcsbank/restbank/internal/domain"
	"github.com/bcsbank/restbank/internal/usecase"
)

// OutboxRepository implements usecase.OutboxRepository.
type OutboxRepository struct {
	store *Store
}

// NewOutboxRepository creates a new OutboxRepository.
func NewOutboxRepository(store *Store) *OutboxRepository {
	return &OutboxRepository{store: store}
}

// Create stages a new outbox event within a ledger transaction.
func (r *OutboxRepository) Create(ctx context.Context, tx usecase.Tx, event *domain.OutboxEvent) error {
	st, err := asStoreTx(tx)
	if err != nil {
		return err
	}

	c := *event
	st.events = append(st.events, &c)
	return nil
}

// GetUnpublished retrieves unpublished events, oldest first.
func (r *OutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var events []*domain.OutboxEvent
	for _, event := range r.store.outbox {
		if event.Published {
			continue
		}
		c := *event
		events = append(events, &c)
		if len(events) == limit {
			break
		}
	}

	return events, nil
}

// MarkPublished marks an event as published.
func (r *OutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, event := range r.store.outbox {
		if event.ID == id {
			event.Published = true
			t := publishedAt
			event.PublishedAt = &t
			return nil
		}
	}

	return nil
}

// DeletePublished drops published events older than the given time.
func (r *OutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	kept := r.store.outbox[:0]
	for _, event := range r.store.outbox {
		if event.Published && event.PublishedAt != nil && event.PublishedAt.Before(before) {
			continue
		}
		kept = append(kept, event)
	}
	r.store.outbox = kept

	return nil
}
