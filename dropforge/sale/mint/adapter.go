package mint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Receipt is what the minting service returns for a confirmed mint.
type Receipt struct {
	TxHash    string  `json:"tx_hash"`
	MintedIDs []int64 `json:"minted_ids"`
}

// Minter submits ownership mints to the external minting service. Mint runs
// outside database transactions; callers record the outcome afterwards.
type Minter interface {
	Mint(ctx context.Context, itemIDs []int64, recipient string, idempotencyKey string) (*Receipt, error)
}

const (
	defaultTimeout = 15 * time.Second
	maxAttempts    = 3
)

type mintRequest struct {
	ItemIDs   []int64 `json:"item_ids"`
	Recipient string  `json:"recipient"`
}

// HTTPMinter posts mint requests to the minting service. Retries cover
// network errors and 5xx responses with exponential backoff; 4xx responses
// fail immediately. The idempotency key makes retries safe on the far side.
type HTTPMinter struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewHTTPMinter(endpoint, apiKey string) *HTTPMinter {
	return &HTTPMinter{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: defaultTimeout},
	}
}

func (m *HTTPMinter) Mint(ctx context.Context, itemIDs []int64, recipient string, idempotencyKey string) (*Receipt, error) {
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	body, err := json.Marshal(mintRequest{ItemIDs: itemIDs, Recipient: recipient})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal mint request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			slog.Warn("Retrying mint request",
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
				slog.String("idempotency_key", idempotencyKey))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		receipt, retryable, err := m.attempt(ctx, body, idempotencyKey)
		if err == nil {
			return receipt, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}

	return nil, fmt.Errorf("mint failed after %d attempts: %w", maxAttempts, lastErr)
}

func (m *HTTPMinter) attempt(ctx context.Context, body []byte, idempotencyKey string) (*Receipt, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("failed to build mint request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)
	if m.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.apiKey)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("mint request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		io.Copy(io.Discard, resp.Body)
		return nil, true, fmt.Errorf("mint service returned %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		io.Copy(io.Discard, resp.Body)
		return nil, false, fmt.Errorf("mint rejected with status %d", resp.StatusCode)
	}

	var receipt Receipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return nil, false, fmt.Errorf("failed to decode mint receipt: %w", err)
	}
	return &receipt, false, nil
}

// LogMinter fakes mints for local development. Every call succeeds with a
// synthetic transaction hash.
type LogMinter struct{}

func NewLogMinter() *LogMinter {
	return &LogMinter{}
}

func (l *LogMinter) Mint(_ context.Context, itemIDs []int64, recipient string, idempotencyKey string) (*Receipt, error) {
	receipt := &Receipt{
		TxHash:    "dev-" + uuid.NewString(),
		MintedIDs: itemIDs,
	}
	slog.Info("[MINT] simulated mint",
		slog.String("recipient", recipient),
		slog.Int("items", len(itemIDs)),
		slog.String("tx_hash", receipt.TxHash),
		slog.String("idempotency_key", idempotencyKey))
	return receipt, nil
}
