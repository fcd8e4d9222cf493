// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// PaymentRecordedEvent is published after a payment has been recorded and
// the referenced product and booking have been marked paid.  It carries
// enough information for downstream consumers to log, notify, or trigger
// analytics without querying the primary database.
type PaymentRecordedEvent struct {
	EventID       string  `json:"event_id"`
	PaymentID     string  `json:"payment_id"`
	ProductID     string  `json:"product_id"`
	BookingID     string  `json:"booking_id"`
	Email         string  `json:"email"`
	TransactionID string  `json:"transactionId"`
	Price         float64 `json:"price"`
	AmountMinor   int64   `json:"amount_minor"`
	RecordedAt    string  `json:"recorded_at"`
}
