// Package sse implements an incremental decoder for the Server-Sent-Events
// text protocol.
//
// The decoder is fed arbitrarily sized fragments of the byte stream and
// emits complete events as blank-line record boundaries are reached,
// independent of how the input was chunked. It holds the unconsumed tail of
// the last partial line between calls.
package sse

import (
	"strconv"
	"strings"
)

// Event is a single decoded SSE record.
type Event struct {
	// Name is the value of the last "event:" field, empty if none was sent.
	Name string

	// Data is the record payload. Multiple "data:" lines join with "\n".
	Data string

	// ID is the value of the last "id:" field.
	ID string

	// RetryMS is the reconnection delay from the "retry:" field, 0 if unset.
	RetryMS int
}

// Decoder incrementally parses an SSE byte stream into events.
//
// Feed must only ever be invoked by one goroutine at a time: the decoder is
// owned by whichever goroutine is consuming the underlying stream and has
// no locking of its own.
type Decoder struct {
	buf     strings.Builder
	current Event
	hasData bool
}

// Feed consumes the next fragment of the stream and invokes emit for every
// event completed by it. Fragments may split lines, fields, or even the
// line terminator itself.
func (d *Decoder) Feed(chunk string, emit func(Event)) {
	d.buf.WriteString(chunk)

	data := d.buf.String()

	pos := 0

	for {
		nl := strings.IndexByte(data[pos:], '\n')
		if nl < 0 {
			break
		}

		line := data[pos : pos+nl]
		pos += nl + 1

		line = strings.TrimSuffix(line, "\r")

		d.consumeLine(line, emit)
	}

	// Keep the incomplete tail for the next call.
	d.buf.Reset()
	d.buf.WriteString(data[pos:])
}

// Reset discards the line buffer and any partially assembled event.
func (d *Decoder) Reset() {
	d.buf.Reset()
	d.current = Event{}
	d.hasData = false
}

// consumeLine applies a single complete line to the in-progress event.
func (d *Decoder) consumeLine(line string, emit func(Event)) {
	// Blank line is the dispatch boundary. An empty record is a no-op.
	// A lone retry field does not make a record dispatchable.
	if line == "" {
		if d.current.Name != "" || d.current.ID != "" || d.hasData {
			d.current.Data = strings.TrimSuffix(d.current.Data, "\n")
			emit(d.current)

			d.current = Event{}
			d.hasData = false
		}

		return
	}

	// Comment line, never touches in-progress state.
	if line[0] == ':' {
		return
	}

	var field, value string

	if colon := strings.IndexByte(line, ':'); colon >= 0 {
		field = line[:colon]
		value = strings.TrimPrefix(line[colon+1:], " ")
	} else {
		field = line
	}

	switch field {
	case "event":
		d.current.Name = value
	case "data":
		if d.hasData {
			d.current.Data += "\n"
		}

		d.current.Data += value
		d.hasData = true
	case "id":
		d.current.ID = value
	case "retry":
		if ms, err := strconv.Atoi(value); err == nil {
			d.current.RetryMS = ms
		}
	default:
		// Unrecognized field names are ignored.
	}
}
