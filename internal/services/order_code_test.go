package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"reunion-shop/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeGenerator_Generate(t *testing.T) {
	g := fixedCodes(5, append([]byte{0, 1, 2, 3, 4, 5, 6, 7}, 24, 25, 26, 27, 28, 29, 30, 31)...)

	code, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, "ABCDEFGH", code)

	code, err = g.Generate()
	require.NoError(t, err)
	assert.Equal(t, "23456789", code)
}

func TestCodeGenerator_GenerateMasksHighBits(t *testing.T) {
	g := fixedCodes(5, repeatByte(32+1, OrderCodeLength)...)

	code, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, "BBBBBBBB", code)
}

func TestCodeGenerator_GenerateUsesAlphabetOnly(t *testing.T) {
	g := NewCodeGenerator(5)
	for i := 0; i < 200; i++ {
		code, err := g.Generate()
		require.NoError(t, err)
		require.Len(t, code, OrderCodeLength)
		for _, c := range code {
			assert.True(t, strings.ContainsRune(OrderCodeAlphabet, c), "unexpected symbol %q in %s", c, code)
		}
	}
	assert.Len(t, OrderCodeAlphabet, 32)
	assert.NotContains(t, OrderCodeAlphabet, "0")
	assert.NotContains(t, OrderCodeAlphabet, "O")
	assert.NotContains(t, OrderCodeAlphabet, "1")
	assert.NotContains(t, OrderCodeAlphabet, "I")
}

func TestCodeGenerator_GenerateShortRandom(t *testing.T) {
	g := NewCodeGeneratorWithSource(bytes.NewReader([]byte{1, 2, 3}), 5)
	_, err := g.Generate()
	assert.Error(t, err)
}

func TestCodeGenerator_Allocate(t *testing.T) {
	tests := []struct {
		name        string
		maxAttempts int
		collisions  int
		wantCode    string
		wantErr     error
		wantChecks  int
	}{
		{name: "first draw free", maxAttempts: 5, collisions: 0, wantCode: "AAAAAAAA", wantChecks: 1},
		{name: "free after two collisions", maxAttempts: 5, collisions: 2, wantCode: "CCCCCCCC", wantChecks: 3},
		{name: "free on last attempt", maxAttempts: 5, collisions: 4, wantCode: "EEEEEEEE", wantChecks: 5},
		{name: "exhausted after five collisions", maxAttempts: 5, collisions: 5, wantErr: domain.ErrCodeAllocationExhausted, wantChecks: 5},
		{name: "configurable budget", maxAttempts: 2, collisions: 2, wantErr: domain.ErrCodeAllocationExhausted, wantChecks: 2},
		{name: "non-positive budget falls back to default", maxAttempts: 0, collisions: 5, wantErr: domain.ErrCodeAllocationExhausted, wantChecks: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var src []byte
			for i := 0; i < 6; i++ {
				src = append(src, repeatByte(byte(i), OrderCodeLength)...)
			}
			g := fixedCodes(tt.maxAttempts, src...)

			var checked []string
			exists := func(ctx context.Context, code string) (bool, error) {
				checked = append(checked, code)
				return len(checked) <= tt.collisions, nil
			}

			code, err := g.Allocate(context.Background(), exists)

			assert.Len(t, checked, tt.wantChecks)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestCodeGenerator_AllocateStoreError(t *testing.T) {
	g := NewCodeGenerator(5)
	boom := errors.New("connection reset")

	_, err := g.Allocate(context.Background(), func(ctx context.Context, code string) (bool, error) {
		return false, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrCodeAllocationExhausted)
}
