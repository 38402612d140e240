package protocol

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/uiprobe/api/schemas"
)

func TestMessageRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	sent := schemas.Bag{"action": "widget_by_path", "path": "MainWindow/okButton"}
	require.NoError(t, WriteMessage(&buf, sent))

	// The frame is a decimal length, a newline, then the payload.
	head, _, found := strings.Cut(buf.String(), "\n")
	require.True(t, found)
	assert.Regexp(t, `^\d+$`, head)

	got, err := ReadMessage(bufio.NewReader(&buf), 0)
	require.NoError(t, err)
	assert.Equal(t, "widget_by_path", got.String("action"))
	assert.Equal(t, "MainWindow/okButton", got.String("path"))
}

func TestMessageLargeHandleSurvives(t *testing.T) {
	// Handles can exceed 2^53 and must not round through float64.
	var buf bytes.Buffer
	oid := uint64(1)<<62 | 12345
	require.NoError(t, WriteMessage(&buf, schemas.Bag{"oid": oid}))

	got, err := ReadMessage(bufio.NewReader(&buf), 0)
	require.NoError(t, err)
	assert.Equal(t, oid, got.Uint64("oid"))
}

func TestReadMessageErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed header", "abc\n{}"},
		{"negative size", "-3\n{}"},
		{"truncated payload", "10\n{}"},
		{"invalid json", "2\nhi"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadMessage(bufio.NewReader(strings.NewReader(tc.input)), 0)
			assert.Error(t, err)
		})
	}
}

func TestReadMessageSizeLimit(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMessage(&buf, schemas.Bag{"data": strings.Repeat("x", 100)}))
	_, err := ReadMessage(bufio.NewReader(&buf), 16)
	assert.ErrorContains(t, err, "byte limit")
}

func TestReadMessageCleanEOF(t *testing.T) {
	_, err := ReadMessage(bufio.NewReader(strings.NewReader("")), 0)
	assert.Equal(t, io.EOF, err)
}
