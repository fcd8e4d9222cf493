package handler_test

import (
	"net/http"
	"testing"

	"github.com/ktmart/marketplace-api/internal/model"
)

func TestCreateBookingThenDuplicate(t *testing.T) {
	st := newStores()
	e := newTestServer(t, st)

	body := map[string]any{"email": "a@x.com", "model": "M1"}

	rr := doJSON(e, http.MethodPost, "/bookings", body, "")
	if rr.Code != http.StatusCreated {
		t.Fatalf("first booking: expected 201, got %d (%s)", rr.Code, rr.Body.String())
	}
	first := decode(t, rr)
	if first["acknowledged"] != true {
		t.Fatalf("first booking: expected acknowledged true, got %v", first)
	}
	if id, _ := first["insertedId"].(string); id == "" {
		t.Fatalf("first booking: expected insertedId, got %v", first)
	}

	rr = doJSON(e, http.MethodPost, "/bookings", body, "")
	if rr.Code != http.StatusConflict {
		t.Fatalf("duplicate booking: expected 409, got %d", rr.Code)
	}
	second := decode(t, rr)
	if second["acknowledged"] != false || second["message"] != "Already Booked" {
		t.Fatalf("duplicate booking: unexpected body %v", second)
	}
	if len(st.bookings.bookings) != 1 {
		t.Fatalf("duplicate booking must not insert; have %d records", len(st.bookings.bookings))
	}
}

func TestCreateBookingMissingFields(t *testing.T) {
	e := newTestServer(t, newStores())
	rr := doJSON(e, http.MethodPost, "/bookings", map[string]any{"email": "a@x.com"}, "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestBookingsByEmailRequiresMatchingIdentity(t *testing.T) {
	st := newStores()
	st.bookings.add(model.Booking{Email: "a@x.com", Model: "M1"})
	st.bookings.add(model.Booking{Email: "a@x.com", Model: "M2"})
	st.bookings.add(model.Booking{Email: "b@x.com", Model: "M1"})
	e := newTestServer(t, st)

	// no credential at all
	rr := doJSON(e, http.MethodGet, "/bookings?email=a@x.com", nil, "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", rr.Code)
	}

	// valid token, wrong identity
	rr = doJSON(e, http.MethodGet, "/bookings?email=a@x.com", nil, tokenFor(t, "b@x.com", model.RoleBuyer))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("mismatched identity: expected 403, got %d", rr.Code)
	}

	// matching identity sees exactly its own bookings
	rr = doJSON(e, http.MethodGet, "/bookings?email=a@x.com", nil, tokenFor(t, "a@x.com", model.RoleBuyer))
	if rr.Code != http.StatusOK {
		t.Fatalf("matching identity: expected 200, got %d", rr.Code)
	}
	var got []model.Booking
	if err := jsonUnmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode bookings: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 bookings for a@x.com, got %d", len(got))
	}
	for _, b := range got {
		if b.Email != "a@x.com" {
			t.Fatalf("listing leaked booking for %s", b.Email)
		}
	}
}

func TestBookingByID(t *testing.T) {
	st := newStores()
	id := st.bookings.add(model.Booking{Email: "a@x.com", Model: "M1"})
	e := newTestServer(t, st)

	rr := doJSON(e, http.MethodGet, "/bookings/"+id, nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	rr = doJSON(e, http.MethodGet, "/bookings/not-a-hex-id", nil, "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("invalid id: expected 400, got %d", rr.Code)
	}

	rr = doJSON(e, http.MethodGet, "/bookings/64b000000000000000000000", nil, "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown id: expected 404, got %d", rr.Code)
	}
}
