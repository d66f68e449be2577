package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"

	"reunion-shop/internal/domain"
)

const (
	// OrderCodeAlphabet leaves out 0/O and 1/I so codes survive being read aloud.
	OrderCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	OrderCodeLength   = 8

	DefaultOrderCodeAttempts = 5
)

// CodeExistsFunc reports whether an order already holds code.
type CodeExistsFunc func(ctx context.Context, code string) (bool, error)

type CodeGenerator struct {
	random      io.Reader
	maxAttempts int
}

func NewCodeGenerator(maxAttempts int) *CodeGenerator {
	return NewCodeGeneratorWithSource(rand.Reader, maxAttempts)
}

func NewCodeGeneratorWithSource(random io.Reader, maxAttempts int) *CodeGenerator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultOrderCodeAttempts
	}
	return &CodeGenerator{random: random, maxAttempts: maxAttempts}
}

func (g *CodeGenerator) MaxAttempts() int { return g.maxAttempts }

// Generate draws one code. The alphabet has 32 symbols, so masking a random
// byte to its low 5 bits is uniform.
func (g *CodeGenerator) Generate() (string, error) {
	buf := make([]byte, OrderCodeLength)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = OrderCodeAlphabet[b&31]
	}
	return string(buf), nil
}

// Allocate draws codes until exists reports a free one, giving up after
// maxAttempts draws with domain.ErrCodeAllocationExhausted.
func (g *CodeGenerator) Allocate(ctx context.Context, exists CodeExistsFunc) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		code, err := g.Generate()
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check order code: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", domain.ErrCodeAllocationExhausted, g.maxAttempts)
}
