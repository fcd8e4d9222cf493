package handler_test

import (
	"net/http"
	"testing"

	"github.com/ktmart/marketplace-api/internal/model"
)

func TestCreatePaymentIntentAmountInMinorUnits(t *testing.T) {
	st := newStores()
	e := newTestServer(t, st)

	rr := doJSON(e, http.MethodPost, "/create-payment-intent", map[string]any{"resale_price": 10}, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}
	if secret, _ := decode(t, rr)["clientSecret"].(string); secret == "" {
		t.Fatalf("expected non-empty clientSecret")
	}
	if len(st.intents.amounts) != 1 || st.intents.amounts[0] != 1000 {
		t.Fatalf("expected processor invoked with amount 1000, got %v", st.intents.amounts)
	}
}

func TestCreatePaymentIntentRejectsNonPositivePrice(t *testing.T) {
	st := newStores()
	e := newTestServer(t, st)

	for _, price := range []float64{0, -3} {
		rr := doJSON(e, http.MethodPost, "/create-payment-intent", map[string]any{"resale_price": price}, "")
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("price %v: expected 400, got %d", price, rr.Code)
		}
	}
	if len(st.intents.amounts) != 0 {
		t.Fatalf("processor must not be invoked for invalid prices")
	}
}

func TestRecordPaymentMarksProductAndBooking(t *testing.T) {
	st := newStores()
	productID := st.products.add(model.Product{Name: "M1", Brand: "B", SellerEmail: "s@x.com", Status: model.StatusAdvertised, ResalePrice: 10})
	bookingID := st.bookings.add(model.Booking{Email: "a@x.com", Model: "M1"})
	e := newTestServer(t, st)

	body := map[string]any{
		"product_id":    productID,
		"booking_id":    bookingID,
		"transactionId": "T1",
		"email":         "a@x.com",
		"price":         10,
	}
	rr := doJSON(e, http.MethodPost, "/payments", body, "")
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rr.Code, rr.Body.String())
	}

	p, err := st.products.ByID(t.Context(), productID)
	if err != nil {
		t.Fatalf("product lookup: %v", err)
	}
	if p.Status != model.StatusPaid || p.TransactionID != "T1" {
		t.Fatalf("product not marked paid: status=%q txn=%q", p.Status, p.TransactionID)
	}

	b, err := st.bookings.ByID(t.Context(), bookingID)
	if err != nil {
		t.Fatalf("booking lookup: %v", err)
	}
	if !b.Paid || b.TransactionID != "T1" {
		t.Fatalf("booking not marked paid: paid=%v txn=%q", b.Paid, b.TransactionID)
	}

	if len(st.payments.payments) != 1 {
		t.Fatalf("expected one persisted payment, got %d", len(st.payments.payments))
	}
	rec := st.payments.payments[0]
	if rec.AmountMinor != 1000 {
		t.Fatalf("expected amount 1000 minor units, got %d", rec.AmountMinor)
	}
}

func TestRecordPaymentReplaySameTransaction(t *testing.T) {
	st := newStores()
	productID := st.products.add(model.Product{Name: "M1", Brand: "B", SellerEmail: "s@x.com", ResalePrice: 10})
	bookingID := st.bookings.add(model.Booking{Email: "a@x.com", Model: "M1"})
	e := newTestServer(t, st)

	body := map[string]any{
		"product_id":    productID,
		"booking_id":    bookingID,
		"transactionId": "T1",
		"price":         10,
	}
	rr := doJSON(e, http.MethodPost, "/payments", body, "")
	if rr.Code != http.StatusCreated {
		t.Fatalf("first submission: expected 201, got %d", rr.Code)
	}
	firstID, _ := decode(t, rr)["insertedId"].(string)

	rr = doJSON(e, http.MethodPost, "/payments", body, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("replay: expected 200, got %d", rr.Code)
	}
	got := decode(t, rr)
	if got["acknowledged"] != true || got["insertedId"] != firstID {
		t.Fatalf("replay: expected the original payment id, got %v", got)
	}
	if len(st.payments.payments) != 1 {
		t.Fatalf("replay must not create a second payment; have %d", len(st.payments.payments))
	}
}

func TestRecordPaymentValidation(t *testing.T) {
	st := newStores()
	e := newTestServer(t, st)

	rr := doJSON(e, http.MethodPost, "/payments", map[string]any{"product_id": "p"}, "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("missing ids: expected 400, got %d", rr.Code)
	}

	rr = doJSON(e, http.MethodPost, "/payments", map[string]any{
		"product_id": "not-hex", "booking_id": "not-hex", "transactionId": "T9",
	}, "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("malformed ids: expected 400, got %d", rr.Code)
	}
}
