package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ktmart/marketplace-api/internal/model"
	"github.com/ktmart/marketplace-api/internal/queue"
	"github.com/ktmart/marketplace-api/internal/repository"
	"github.com/ktmart/marketplace-api/internal/service"
)

type memPayments struct {
	mu   sync.Mutex
	recs []model.Payment
}

func (m *memPayments) Insert(ctx context.Context, p *model.Payment) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	cp.ID = primitive.NewObjectID()
	m.recs = append(m.recs, cp)
	return cp.ID.Hex(), nil
}

func (m *memPayments) ByTransactionID(ctx context.Context, txn string) (model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.recs {
		if p.TransactionID == txn {
			return p, nil
		}
	}
	return model.Payment{}, repository.ErrNotFound
}

type memMarker struct {
	mu       sync.Mutex
	calls    int
	failures int // error out this many calls before succeeding
	txns     map[string]string // id -> transactionId
}

func (m *memMarker) MarkPaid(ctx context.Context, id, txn string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.failures > 0 {
		m.failures--
		return errors.New("mark paid: store unavailable")
	}
	if m.txns == nil {
		m.txns = map[string]string{}
	}
	m.txns[id] = txn
	return nil
}

func newRecorder() (*service.PaymentRecorder, *memPayments, *memMarker, *memMarker) {
	pay := &memPayments{}
	prod := &memMarker{}
	book := &memMarker{}
	return &service.PaymentRecorder{Payments: pay, Products: prod, Bookings: book}, pay, prod, book
}

func TestRecordAppliesAllThreeWrites(t *testing.T) {
	r, pay, prod, book := newRecorder()

	res, err := r.Record(t.Context(), model.Payment{
		ProductID: "P1", BookingID: "B1", TransactionID: "T1", Price: 10,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if res.Replayed || res.InsertedID == "" {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(pay.recs) != 1 || pay.recs[0].AmountMinor != 1000 {
		t.Fatalf("unexpected payment records %+v", pay.recs)
	}
	if prod.txns["P1"] != "T1" || book.txns["B1"] != "T1" {
		t.Fatalf("product/booking not stamped: %v %v", prod.txns, book.txns)
	}
}

func TestRecordIsIdempotentPerTransaction(t *testing.T) {
	r, pay, prod, book := newRecorder()

	p := model.Payment{ProductID: "P1", BookingID: "B1", TransactionID: "T1", Price: 10}
	first, err := r.Record(t.Context(), p)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Record(t.Context(), p)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Replayed || second.InsertedID != first.InsertedID {
		t.Fatalf("replay should return the original id: %+v vs %+v", first, second)
	}
	if len(pay.recs) != 1 {
		t.Fatalf("replay inserted a second payment")
	}
	// The replay re-applies the paid marks, which must not change state.
	if prod.txns["P1"] != "T1" || book.txns["B1"] != "T1" {
		t.Fatalf("replay corrupted marks: %v %v", prod.txns, book.txns)
	}
}

func TestRecordReplayRepairsPartialFailure(t *testing.T) {
	r, pay, prod, book := newRecorder()
	prod.failures = 1 // first submission dies after the payment insert

	p := model.Payment{ProductID: "P1", BookingID: "B1", TransactionID: "T1", Price: 10}
	if _, err := r.Record(t.Context(), p); err == nil {
		t.Fatal("expected the first submission to fail")
	}
	if len(pay.recs) != 1 {
		t.Fatalf("payment record should persist across the failure, have %d", len(pay.recs))
	}
	if len(prod.txns) != 0 || len(book.txns) != 0 {
		t.Fatalf("marks must not be applied on failure: %v %v", prod.txns, book.txns)
	}

	res, err := r.Record(t.Context(), p)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !res.Replayed || res.InsertedID != pay.recs[0].ID.Hex() {
		t.Fatalf("replay should ack the stored payment: %+v", res)
	}
	if prod.txns["P1"] != "T1" || book.txns["B1"] != "T1" {
		t.Fatalf("replay did not finish the paid marks: %v %v", prod.txns, book.txns)
	}
	if prod.calls != 2 {
		t.Fatalf("expected the failed mark plus one repair, got %d calls", prod.calls)
	}
	if len(pay.recs) != 1 {
		t.Fatalf("replay inserted a second payment")
	}
}

func TestRecordSerializesConcurrentReplays(t *testing.T) {
	r, pay, _, _ := newRecorder()

	const n = 16
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := r.Record(context.Background(), model.Payment{
				ProductID: "P1", BookingID: "B1", TransactionID: "T1", Price: 10,
			})
			if err != nil {
				t.Errorf("record: %v", err)
			}
		}()
	}
	wg.Wait()

	if len(pay.recs) != 1 {
		t.Fatalf("expected exactly one payment for one transaction id, got %d", len(pay.recs))
	}
}

func TestRecordPublishesEvent(t *testing.T) {
	r, _, _, _ := newRecorder()

	var got []queue.PaymentRecordedEvent
	r.Publish = func(ctx context.Context, ev queue.PaymentRecordedEvent) error {
		got = append(got, ev)
		return nil
	}

	if _, err := r.Record(t.Context(), model.Payment{
		ProductID: "P1", BookingID: "B1", TransactionID: "T1", Price: 2.5, Email: "a@x.com",
	}); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one published event, got %d", len(got))
	}
	ev := got[0]
	if ev.TransactionID != "T1" || ev.ProductID != "P1" || ev.BookingID != "B1" || ev.AmountMinor != 250 {
		t.Fatalf("unexpected event %+v", ev)
	}
	if ev.EventID == "" || ev.PaymentID == "" {
		t.Fatalf("event missing ids: %+v", ev)
	}
}
