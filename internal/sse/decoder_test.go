package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode feeds the whole input in one call and collects the emitted events.
func decode(t *testing.T, input string) []Event {
	t.Helper()

	var d Decoder

	var events []Event

	d.Feed(input, func(ev Event) {
		events = append(events, ev)
	})

	return events
}

func TestFeed_SingleEvent(t *testing.T) {
	events := decode(t, "event: ping\ndata: hello\n\n")

	require.Len(t, events, 1)
	assert.Equal(t, "ping", events[0].Name)
	assert.Equal(t, "hello", events[0].Data)
}

func TestFeed_MultiLineData(t *testing.T) {
	events := decode(t, "data: a\ndata: b\n\n")

	require.Len(t, events, 1)
	assert.Equal(t, "a\nb", events[0].Data)
}

func TestFeed_DataOrderPreserved(t *testing.T) {
	events := decode(t, "data: first\ndata: second\ndata: third\n\n")

	require.Len(t, events, 1)
	assert.Equal(t, "first\nsecond\nthird", events[0].Data)
}

func TestFeed_BlankLineWithoutFieldsIsNoOp(t *testing.T) {
	events := decode(t, "\n\n\n")

	assert.Empty(t, events)
}

func TestFeed_CommentIgnored(t *testing.T) {
	events := decode(t, ": heartbeat\n\ndata: x\n: mid-record comment\ndata: y\n\n")

	require.Len(t, events, 1)
	assert.Equal(t, "x\ny", events[0].Data)
}

func TestFeed_CommentAloneEmitsNothing(t *testing.T) {
	events := decode(t, ": just a comment\n\n")

	assert.Empty(t, events)
}

func TestFeed_CRLFLineEndings(t *testing.T) {
	events := decode(t, "event: ping\r\ndata: hi\r\n\r\n")

	require.Len(t, events, 1)
	assert.Equal(t, "ping", events[0].Name)
	assert.Equal(t, "hi", events[0].Data)
}

func TestFeed_FieldWithoutColon(t *testing.T) {
	// A line with no colon is a field name with empty value.
	events := decode(t, "data\n\n")

	require.Len(t, events, 1)
	assert.Equal(t, "", events[0].Data)
}

func TestFeed_ValueWithoutLeadingSpace(t *testing.T) {
	events := decode(t, "data:tight\n\n")

	require.Len(t, events, 1)
	assert.Equal(t, "tight", events[0].Data)
}

func TestFeed_OnlyFirstLeadingSpaceStripped(t *testing.T) {
	events := decode(t, "data:  two spaces\n\n")

	require.Len(t, events, 1)
	assert.Equal(t, " two spaces", events[0].Data)
}

func TestFeed_IDAndRetry(t *testing.T) {
	events := decode(t, "id: 42\nretry: 3000\ndata: x\n\n")

	require.Len(t, events, 1)
	assert.Equal(t, "42", events[0].ID)
	assert.Equal(t, 3000, events[0].RetryMS)
}

func TestFeed_InvalidRetryIgnored(t *testing.T) {
	events := decode(t, "retry: 1500\nretry: soon\ndata: x\n\n")

	require.Len(t, events, 1)
	assert.Equal(t, 1500, events[0].RetryMS)
}

func TestFeed_UnknownFieldIgnored(t *testing.T) {
	events := decode(t, "frobnicate: yes\ndata: x\n\n")

	require.Len(t, events, 1)
	assert.Equal(t, "x", events[0].Data)
	assert.Equal(t, "", events[0].Name)
}

func TestFeed_EventFieldOverwrites(t *testing.T) {
	events := decode(t, "event: first\nevent: second\ndata: x\n\n")

	require.Len(t, events, 1)
	assert.Equal(t, "second", events[0].Name)
}

func TestFeed_TrailingNewlineStrippedOnce(t *testing.T) {
	// An empty final data line leaves exactly one trailing \n, which is stripped.
	events := decode(t, "data: a\ndata:\n\n")

	require.Len(t, events, 1)
	assert.Equal(t, "a", events[0].Data)
}

func TestFeed_MultipleEvents(t *testing.T) {
	events := decode(t, "data: one\n\ndata: two\n\ndata: three\n\n")

	require.Len(t, events, 3)
	assert.Equal(t, "one", events[0].Data)
	assert.Equal(t, "two", events[1].Data)
	assert.Equal(t, "three", events[2].Data)
}

// Chunking must never change the decoded event sequence.
func TestFeed_ChunkingEquivalence(t *testing.T) {
	input := "event: ping\r\ndata: hello\ndata: world\nid: 7\nretry: 250\n\n" +
		": comment\n\ndata:tight\n\nevent: done\ndata: bye\n\n"

	whole := decode(t, input)
	require.Len(t, whole, 3)

	for chunkSize := 1; chunkSize <= len(input); chunkSize++ {
		var d Decoder

		var events []Event

		for start := 0; start < len(input); start += chunkSize {
			end := min(start+chunkSize, len(input))
			d.Feed(input[start:end], func(ev Event) {
				events = append(events, ev)
			})
		}

		require.Equal(t, whole, events, "chunk size %d", chunkSize)
	}
}

func TestFeed_SplitInsideLineTerminator(t *testing.T) {
	var d Decoder

	var events []Event

	emit := func(ev Event) { events = append(events, ev) }

	d.Feed("data: hi\r", emit)
	assert.Empty(t, events)

	d.Feed("\n", emit)
	assert.Empty(t, events)

	d.Feed("\n", emit)
	require.Len(t, events, 1)
	assert.Equal(t, "hi", events[0].Data)
}

func TestReset_DiscardsPartialState(t *testing.T) {
	var d Decoder

	var events []Event

	emit := func(ev Event) { events = append(events, ev) }

	d.Feed("data: partial", emit)
	d.Reset()
	d.Feed("\n\n", emit)

	assert.Empty(t, events)
}
