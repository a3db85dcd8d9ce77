package auction

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dropforge/dropforge/dropforge/database/models"
	"github.com/dropforge/dropforge/dropforge/database/repositories"
	"github.com/dropforge/dropforge/dropforge/sale/salerrors"
)

const (
	codeGenMaxRetries = 5
	codeGenTimeout    = 5 * time.Second
)

// CodeGenerator produces short human-readable auction codes like "SHD3KQ":
// a prefix derived from the item name plus a random base36 suffix. Uniqueness
// is enforced by the database constraint; the generator only pre-checks to
// keep insert conflicts rare.
type CodeGenerator struct {
	auctions repositories.AuctionRepository
	mu       sync.Mutex
}

func NewCodeGenerator(auctions repositories.AuctionRepository) *CodeGenerator {
	return &CodeGenerator{auctions: auctions}
}

// Generate returns a candidate code not currently in use.
func (g *CodeGenerator) Generate(ctx context.Context, item *models.Item) (string, error) {
	prefix := buildCodePrefix(item.Name)

	ctx, cancel := context.WithTimeout(ctx, codeGenTimeout)
	defer cancel()

	g.mu.Lock()
	defer g.mu.Unlock()

	for attempt := 0; attempt < codeGenMaxRetries; attempt++ {
		code, err := candidateCode(prefix)
		if err != nil {
			return "", fmt.Errorf("failed to generate candidate code: %w", err)
		}

		_, err = g.auctions.GetByCode(ctx, code)
		if errors.Is(err, salerrors.ErrAuctionNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check code uniqueness: %w", err)
		}

		backoff := time.Duration(1<<uint(attempt)) * time.Millisecond
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("timeout during code generation: %w", ctx.Err())
		case <-time.After(backoff):
		}
	}

	return "", fmt.Errorf("failed to generate unique auction code after %d attempts", codeGenMaxRetries)
}

// buildCodePrefix takes initials from the first two words of the item name,
// or the first two letters of a single-word name.
func buildCodePrefix(name string) string {
	words := strings.Fields(name)
	var prefix string
	switch {
	case len(words) >= 2:
		prefix = strings.ToUpper(string(words[0][0]) + string(words[1][0]))
	case len(words) == 1 && len(words[0]) >= 2:
		prefix = strings.ToUpper(words[0][:2])
	case len(words) == 1:
		prefix = strings.ToUpper(words[0] + "X")
	default:
		prefix = "XX"
	}
	return prefix
}

func candidateCode(prefix string) (string, error) {
	bytes := make([]byte, 2)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	suffix := strings.ToUpper(base36encode(bytes))
	if len(suffix) < 3 {
		suffix = fmt.Sprintf("%03s", suffix)
	} else {
		suffix = suffix[:3]
	}
	return prefix + suffix, nil
}

func base36encode(bytes []byte) string {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	result := ""
	number := binary.BigEndian.Uint16(bytes)

	for number > 0 {
		result = string(alphabet[number%36]) + result
		number /= 36
	}

	if result == "" {
		result = "0"
	}
	return result
}
