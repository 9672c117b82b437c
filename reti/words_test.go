package reti

import (
	"bytes"
	"testing"
)

func TestWordsRoundTrip(t *testing.T) {
	words := []uint32{0x00000000, 0xFFFFFFFF, 0x12345678}
	var buf bytes.Buffer
	if err := EncodeWords(&buf, words); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := DecodeWords(&buf, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert(t, len(got) == len(words), "length mismatch: got %d, want %d", len(got), len(words))
	for i := range words {
		assert(t, got[i] == words[i], "word %d: got 0x%x, want 0x%x", i, got[i], words[i])
	}
}

func TestWordsStrictRejectsTrailingBytes(t *testing.T) {
	_, err := DecodeWords(bytes.NewReader([]byte{1, 2, 3}), true)
	if err == nil {
		t.Fatal("expected an error for a truncated trailing group under strict mode")
	}
}

func TestWordsLenientTruncatesTrailingBytes(t *testing.T) {
	words, err := DecodeWords(bytes.NewReader([]byte{1, 2, 3, 4, 5, 6}), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert(t, len(words) == 1, "expected 1 full word decoded, got %d", len(words))
}
