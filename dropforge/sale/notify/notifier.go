package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Notifier delivers bidder-facing events. Delivery is fire-and-forget: the
// engine commits its state transition first and only logs delivery failures.
type Notifier interface {
	NotifyOutbid(ctx context.Context, recipient, itemName string, newAmountCents int64) error
	NotifyAuctionWon(ctx context.Context, recipient, itemName string, amountCents int64, txRef string) error
}

// Event is the wire payload published for downstream delivery workers.
type Event struct {
	Type        string    `json:"type"`
	Recipient   string    `json:"recipient"`
	ItemName    string    `json:"item_name"`
	AmountCents int64     `json:"amount_cents"`
	TxRef       string    `json:"tx_ref,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

const (
	EventTypeOutbid     = "outbid"
	EventTypeAuctionWon = "auction_won"
)

// NATSNotifier publishes events to a NATS subject per event type; a delivery
// worker turns them into emails.
type NATSNotifier struct {
	conn          *nats.Conn
	subjectPrefix string
}

func NewNATSNotifier(url, subjectPrefix string) (*NATSNotifier, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	if subjectPrefix == "" {
		subjectPrefix = "drop.notify"
	}
	return &NATSNotifier{conn: conn, subjectPrefix: subjectPrefix}, nil
}

func (n *NATSNotifier) NotifyOutbid(ctx context.Context, recipient, itemName string, newAmountCents int64) error {
	return n.publish(buildEvent(EventTypeOutbid, recipient, itemName, newAmountCents, ""))
}

func (n *NATSNotifier) NotifyAuctionWon(ctx context.Context, recipient, itemName string, amountCents int64, txRef string) error {
	return n.publish(buildEvent(EventTypeAuctionWon, recipient, itemName, amountCents, txRef))
}

func (n *NATSNotifier) publish(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	subject := fmt.Sprintf("%s.%s", n.subjectPrefix, event.Type)
	if err := n.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish notification to %s: %w", subject, err)
	}
	return nil
}

func (n *NATSNotifier) Close() {
	if n.conn != nil {
		n.conn.Close()
	}
}

func buildEvent(eventType, recipient, itemName string, amountCents int64, txRef string) Event {
	return Event{
		Type:        eventType,
		Recipient:   recipient,
		ItemName:    itemName,
		AmountCents: amountCents,
		TxRef:       txRef,
		Timestamp:   time.Now().UTC(),
	}
}

// LogNotifier is the development fallback when no NATS URL is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (l *LogNotifier) NotifyOutbid(_ context.Context, recipient, itemName string, newAmountCents int64) error {
	slog.Info("[OUTBID] notification",
		slog.String("recipient", recipient),
		slog.String("item", itemName),
		slog.Int64("new_amount_cents", newAmountCents))
	return nil
}

func (l *LogNotifier) NotifyAuctionWon(_ context.Context, recipient, itemName string, amountCents int64, txRef string) error {
	slog.Info("[WON] notification",
		slog.String("recipient", recipient),
		slog.String("item", itemName),
		slog.Int64("amount_cents", amountCents),
		slog.String("tx_ref", txRef))
	return nil
}
