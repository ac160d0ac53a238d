package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestChunkWriterMoveCursor(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf)
	cw.MoveCursor(5, 3)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "\033[3;5H" {
		t.Errorf("output = %q", got)
	}
}

func TestChunkWriterWriteAt(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf)
	cw.WriteAt(11, 3, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "\033[3;11Hhi" {
		t.Errorf("output = %q", got)
	}
}

func TestChunkWriterColors(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf)
	cw.SetFg(RGB{R: 1, G: 2, B: 3})
	cw.SetBg(RGB{R: 4, G: 5, B: 6})
	cw.Reset()
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "\033[38;2;1;2;3m\033[48;2;4;5;6m\033[0m"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestChunkWriterFlushResets(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf)
	cw.WriteString("first")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	cw.WriteString("second")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "second" {
		t.Errorf("output = %q, buffer not reset between flushes", got)
	}
}

func TestChunkWriterLargePayload(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf)
	payload := strings.Repeat("x", maxChunkSize*3+17)
	cw.WriteString(payload)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != payload {
		t.Error("chunking corrupted the payload")
	}
}
