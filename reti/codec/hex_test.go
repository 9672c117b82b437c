package codec

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	if !cond {
		t.Fatalf(fmt.Sprintf("%v %s", cond, format), args...)
	}
}

func TestEncodeHexBasic(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeHex(&buf, []uint32{0x11111111, 0x22222222})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "00000000 11111111\n00000001 22222222\n"
	assert(t, buf.String() == want, "got %q, want %q", buf.String(), want)
}

func TestDecodeHexRoundTrip(t *testing.T) {
	words := []uint32{1, 2, 3, 4}
	var buf bytes.Buffer
	if err := EncodeHex(&buf, words); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := DecodeHex(&buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert(t, len(got) == len(words), "length mismatch: got %d, want %d", len(got), len(words))
	for i := range words {
		assert(t, got[i] == words[i], "word %d: got 0x%x, want 0x%x", i, got[i], words[i])
	}
}

func TestDecodeHexFillsGaps(t *testing.T) {
	words, err := DecodeHex(strings.NewReader("00000000 0000000a\n00000003 0000000b\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []uint32{0xa, 0, 0, 0xb}
	assert(t, len(words) == len(want), "got %d words, want %d", len(words), len(want))
	for i := range want {
		assert(t, words[i] == want[i], "word %d: got 0x%x, want 0x%x", i, words[i], want[i])
	}
}

func TestDecodeHexStripsCommentsAndBlankLines(t *testing.T) {
	words, err := DecodeHex(strings.NewReader("; header\n00000000 00000001 ; one\n\n00000001 00000002\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert(t, len(words) == 2, "expected 2 words, got %d", len(words))
	assert(t, words[0] == 1 && words[1] == 2, "got %v", words)
}

func TestDecodeHexRejectsOutOfOrderAddresses(t *testing.T) {
	_, err := DecodeHex(strings.NewReader("00000005 00000001\n00000002 00000002\n"))
	if err == nil {
		t.Fatal("expected an error for out-of-order addresses")
	}
	_, ok := err.(*HexError)
	assert(t, ok, "expected *HexError, got %T", err)
}

func TestDecodeHexRejectsMalformedLine(t *testing.T) {
	_, err := DecodeHex(strings.NewReader("not-hex\n"))
	if err == nil {
		t.Fatal("expected an error for a malformed line")
	}
}

func TestDecodeHexRejectsMissingField(t *testing.T) {
	_, err := DecodeHex(strings.NewReader("00000000\n"))
	if err == nil {
		t.Fatal("expected an error for a line missing the data field")
	}
}
