package messenger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessageShortPassthrough(t *testing.T) {
	msg := "строка раз\nстрока два"
	parts := SplitMessage(msg, 4000)
	require.Len(t, parts, 1)
	assert.Equal(t, msg, parts[0])
}

func TestSplitMessageLineBoundaries(t *testing.T) {
	msg := "aaa\nbbb\nccc"
	parts := SplitMessage(msg, 4)

	assert.Equal(t, []string{"aaa", "bbb", "ccc"}, parts)
	for _, p := range parts {
		assert.LessOrEqual(t, len(p), 4)
	}
	// joined back together the line sequence is intact
	assert.Equal(t, msg, strings.Join(parts, "\n"))
}

func TestSplitMessagePacksLines(t *testing.T) {
	msg := "aa\nbb\ncc\ndd"
	parts := SplitMessage(msg, 6)

	// two lines fit per part: "aa\nbb" is 5 chars
	assert.Equal(t, []string{"aa\nbb", "cc\ndd"}, parts)
	assert.Equal(t, msg, strings.Join(parts, "\n"))
}

func TestSplitMessageOversizedLine(t *testing.T) {
	long := strings.Repeat("x", 50)
	msg := "aaa\n" + long + "\nbbb"
	parts := SplitMessage(msg, 10)

	require.Equal(t, []string{"aaa", long, "bbb"}, parts)
	// the oversized line ships whole, never cut mid-way
	assert.Equal(t, 50, len(parts[1]))
}

func TestSplitMessageEmpty(t *testing.T) {
	parts := SplitMessage("", 10)
	assert.Equal(t, []string{""}, parts)
}
