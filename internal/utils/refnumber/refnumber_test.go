package refnumber_test

import (
	"testing"

	"github.com/prospel/prospel_backend/internal/utils/refnumber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDigits(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"1", "95"},   // 100 mod 97 = 3
		{"12", "62"},  // 1200 mod 97 = 36
		{"24190000007887475", "26"}, // reference from a real tax assessment
	}
	for _, tt := range tests {
		got, err := refnumber.CheckDigits(tt.base)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "base %s", tt.base)
	}
}

func TestGenerateAndValid(t *testing.T) {
	ref, err := refnumber.Generate("24190000007887475")
	require.NoError(t, err)
	assert.Equal(t, "2624190000007887475", ref)
	assert.True(t, refnumber.Valid(ref))

	// Any single digit flip breaks validity.
	assert.False(t, refnumber.Valid("2624190000007887474"))
	assert.False(t, refnumber.Valid("2724190000007887475"))
}

func TestValid_Normalizes(t *testing.T) {
	assert.True(t, refnumber.Valid("26 2419-0000007887475"))
}

func TestInvalidInput(t *testing.T) {
	_, err := refnumber.CheckDigits("")
	assert.Error(t, err)

	_, err = refnumber.CheckDigits("12a4")
	assert.Error(t, err)

	assert.False(t, refnumber.Valid("9"))
	assert.False(t, refnumber.Valid("97abc"))
}
