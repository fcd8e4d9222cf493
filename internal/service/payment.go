// Package service holds the payment recorder, the one place in the API
// where a single request mutates more than one collection.
package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ktmart/marketplace-api/internal/model"
	"github.com/ktmart/marketplace-api/internal/payments"
	"github.com/ktmart/marketplace-api/internal/queue"
	"github.com/ktmart/marketplace-api/internal/repository"
)

// PaymentStore persists payment records.
type PaymentStore interface {
	Insert(ctx context.Context, p *model.Payment) (string, error)
	ByTransactionID(ctx context.Context, transactionID string) (model.Payment, error)
}

// ProductMarker stamps a product as paid.
type ProductMarker interface {
	MarkPaid(ctx context.Context, id, transactionID string) error
}

// BookingMarker stamps a booking as paid.
type BookingMarker interface {
	MarkPaid(ctx context.Context, id, transactionID string) error
}

// RecordResult reports the outcome of recording a payment.
type RecordResult struct {
	InsertedID string // hex id of the payment document
	Replayed   bool   // true when the transaction id had already been recorded
}

// lockTable hands out one mutex per key so updates to the same document
// serialize while unrelated payments proceed concurrently.  Entries are
// never evicted; the key space is bounded by the number of products and
// bookings that ever see a payment.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (t *lockTable) get(key string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.locks == nil {
		t.locks = make(map[string]*sync.Mutex)
	}
	l, ok := t.locks[key]
	if !ok {
		l = &sync.Mutex{}
		t.locks[key] = l
	}
	return l
}

// PaymentRecorder records a payment and marks the referenced product and
// booking as paid with the same transaction id.  The three writes are not
// wrapped in a store transaction; instead the transaction id acts as an
// idempotency key and a per-product/per-booking lock table keeps
// concurrent submissions for the same documents from interleaving.  A
// replay of an already recorded transaction re-applies the two paid marks
// before acking, so a crash between the writes is repaired by submitting
// the same transaction id again.
type PaymentRecorder struct {
	Payments PaymentStore
	Products ProductMarker
	Bookings BookingMarker

	// Publish sends the post-record event.  Nil disables publishing;
	// main wires it to PublishPaymentRecorded.
	Publish func(ctx context.Context, ev queue.PaymentRecordedEvent) error

	locks lockTable
}

// replay finishes an already recorded transaction.  The paid marks are
// plain $set writes keyed off the stored payment, so re-applying them is
// safe and completes a submission that died between the insert and the
// marks before the client is acked.
func (r *PaymentRecorder) replay(ctx context.Context, existing model.Payment) (RecordResult, error) {
	if err := r.Products.MarkPaid(ctx, existing.ProductID, existing.TransactionID); err != nil {
		return RecordResult{}, err
	}
	if err := r.Bookings.MarkPaid(ctx, existing.BookingID, existing.TransactionID); err != nil {
		return RecordResult{}, err
	}
	return RecordResult{InsertedID: existing.ID.Hex(), Replayed: true}, nil
}

// Record applies a payment submission.  The payment must carry product id,
// booking id and transaction id; the handler validates presence.
func (r *PaymentRecorder) Record(ctx context.Context, p model.Payment) (RecordResult, error) {
	// Fast idempotency probe before taking any lock.
	if existing, err := r.Payments.ByTransactionID(ctx, p.TransactionID); err == nil {
		return r.replay(ctx, existing)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return RecordResult{}, err
	}

	// Product before booking, always in that order, so two submissions
	// touching the same pair cannot deadlock.
	pl := r.locks.get("product:" + p.ProductID)
	pl.Lock()
	defer pl.Unlock()
	bl := r.locks.get("booking:" + p.BookingID)
	bl.Lock()
	defer bl.Unlock()

	// Re-check under the locks: a concurrent submission with the same
	// transaction id may have won the race.
	if existing, err := r.Payments.ByTransactionID(ctx, p.TransactionID); err == nil {
		return r.replay(ctx, existing)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return RecordResult{}, err
	}

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.AmountMinor == 0 && p.Price > 0 {
		p.AmountMinor = payments.MinorUnits(p.Price)
	}

	id, err := r.Payments.Insert(ctx, &p)
	if err != nil {
		return RecordResult{}, err
	}
	if err := r.Products.MarkPaid(ctx, p.ProductID, p.TransactionID); err != nil {
		return RecordResult{}, err
	}
	if err := r.Bookings.MarkPaid(ctx, p.BookingID, p.TransactionID); err != nil {
		return RecordResult{}, err
	}

	if r.Publish != nil {
		ev := queue.PaymentRecordedEvent{
			EventID:       uuid.NewString(),
			PaymentID:     id,
			ProductID:     p.ProductID,
			BookingID:     p.BookingID,
			Email:         p.Email,
			TransactionID: p.TransactionID,
			Price:         p.Price,
			AmountMinor:   p.AmountMinor,
			RecordedAt:    time.Now().UTC().Format(time.RFC3339),
		}
		if err := r.Publish(ctx, ev); err != nil {
			log.Printf("payment-recorder: publish event failed: %v", err)
		}
	}
	return RecordResult{InsertedID: id}, nil
}
