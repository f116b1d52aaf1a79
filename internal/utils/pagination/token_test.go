package pagination_test

import (
	"testing"
	"time"

	"github.com/gestika/ledger/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	entryDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 3, 15, 10, 32, 12, 123456789, time.UTC)
	lineID := "a1b2c3d4-0000-0000-0000-000000000001"

	token := pagination.EncodeToken(entryDate, createdAt, lineID)
	require.NotEmpty(t, token)

	gotDate, gotCreated, gotLineID, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, entryDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreated))
	assert.Equal(t, lineID, gotLineID)
}

// Lines committed in one posting share entry date and created_at, so the
// line ID must be what distinguishes their cursors.
func TestEncodeToken_SameTimestampsDistinctLines(t *testing.T) {
	entryDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 3, 15, 10, 32, 12, 0, time.UTC)

	tokenA := pagination.EncodeToken(entryDate, createdAt, "line-a")
	tokenB := pagination.EncodeToken(entryDate, createdAt, "line-b")
	require.NotEqual(t, tokenA, tokenB)

	_, _, lineA, err := pagination.DecodeToken(tokenA)
	require.NoError(t, err)
	_, _, lineB, err := pagination.DecodeToken(tokenB)
	require.NoError(t, err)
	assert.Equal(t, "line-a", lineA)
	assert.Equal(t, "line-b", lineB)
}

func TestDecodeToken_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "!!not-base64!!"},
		{"missing separators", "MjAyNC0wMy0xNQ=="}, // base64("2024-03-15")
		{"bad dates", "Zm9vfGJhcnxiYXo="},          // base64("foo|bar|baz")
		{"missing line id", "MjAyNC0wMy0xNVQwMDowMDowMFp8MjAyNC0wMy0xNVQwMDowMDowMFp8"}, // empty third field
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := pagination.DecodeToken(tc.token)
			assert.Error(t, err)
		})
	}
}
