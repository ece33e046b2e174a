package measure

import (
	"bufio"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		key  string
		val  float64
	}{
		{"St. Petersburg;10.2", "St. Petersburg", 10.2},
		{"A;-42.5", "A", -42.5},
		{"A;0", "A", 0},
		{";3.5", "", 3.5},
		{"key;1e2", "key", 100},
		{"湘南;7.7", "湘南", 7.7},
	}

	for _, tt := range tests {
		rec, err := Parse(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.key, rec.Key)
		assert.Equal(t, tt.val, rec.Value)
	}
}

func TestParseMalformed(t *testing.T) {
	lines := []string{
		"no delimiter",
		"",
		"key;",
		"key;abc",
		"key;12.3.4",
		"key; 12.3",
		"key;NaN",
		"key;+Inf",
		"a;b;1.5",
	}

	for _, line := range lines {
		_, err := Parse(line)
		require.Error(t, err, line)
		assert.ErrorIs(t, err, ErrMalformed, line)
	}
}

func TestReadAll(t *testing.T) {
	lines, err := ReadAll(strings.NewReader("A;1.0\nB;2.0\nC;3.0\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A;1.0", "B;2.0", "C;3.0"}, lines)

	lines, err = ReadAll(strings.NewReader("A;1.0\nB;2.0"))
	require.NoError(t, err)
	assert.Len(t, lines, 2)

	lines, err = ReadAll(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestReadAllCRLF(t *testing.T) {
	lines, err := ReadAll(strings.NewReader("A;1.0\r\nB;2.0\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A;1.0", "B;2.0"}, lines)
}

func TestReadAllOverlongLine(t *testing.T) {
	_, err := ReadAll(strings.NewReader(strings.Repeat("x", MaxLine+1)))
	assert.ErrorIs(t, err, bufio.ErrTooLong)
}

func TestReadFile(t *testing.T) {
	err := os.WriteFile(".test_input", []byte("A;1.0\nB;2.0\n"), 0o644)
	require.NoError(t, err)
	defer os.RemoveAll(".test_input")

	lines, err := ReadFile(".test_input")
	require.NoError(t, err)
	assert.Equal(t, []string{"A;1.0", "B;2.0"}, lines)

	_, err = ReadFile(".does_not_exist")
	assert.Error(t, err)
}
