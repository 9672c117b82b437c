package reti

import (
	"encoding/binary"
	"fmt"
	"io"
)

// EncodeWords writes words to w as a little-endian uint32 stream with no
// header or footer, one word at a time.
func EncodeWords(w io.Writer, words []uint32) error {
	var buf [4]byte
	for _, word := range words {
		binary.LittleEndian.PutUint32(buf[:], word)
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
	return nil
}

// DecodeWords reads a little-endian uint32 stream from r. If strict is
// true, a trailing byte group shorter than 4 bytes is a hard parse
// error (the decbin path); otherwise it is silently EOF-truncated (the
// emulator's code/data image loader).
func DecodeWords(r io.Reader, strict bool) ([]uint32, error) {
	var words []uint32
	buf := make([]byte, 4)
	for {
		n, err := io.ReadFull(r, buf)
		if err == io.EOF {
			return words, nil
		}
		if err == io.ErrUnexpectedEOF {
			if strict {
				return nil, fmt.Errorf("truncated word: %d trailing byte(s)", n)
			}
			return words, nil
		}
		if err != nil {
			return nil, err
		}
		words = append(words, binary.LittleEndian.Uint32(buf))
	}
}
