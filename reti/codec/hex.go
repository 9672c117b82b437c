// Package codec implements the hex text transfer format used by enchex
// and decbin: lines of "{address:08x} {data:08x}" with an optional
// ';'-introduced comment.
package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// EncodeHex writes one "{address:08x} {data:08x}" line per word, with
// address equal to the word's index in words.
func EncodeHex(w io.Writer, words []uint32) error {
	bw := bufio.NewWriter(w)
	for i, word := range words {
		if _, err := fmt.Fprintf(bw, "%08x %08x\n", uint32(i), word); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// HexError reports a malformed hex text line.
type HexError struct {
	Line   int
	Reason string
}

func (e *HexError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// DecodeHex parses a hex text stream into a dense word array starting
// at address 0. Addresses must be monotonically nondecreasing; a gap
// between one line's address and the next is filled with zero words.
// Trailing whitespace and a ';'-introduced comment on each line are
// ignored.
func DecodeHex(r io.Reader) ([]uint32, error) {
	scanner := bufio.NewScanner(r)
	var words []uint32
	lastAddr := int64(-1)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if semi := strings.IndexByte(line, ';'); semi >= 0 {
			line = line[:semi]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, &HexError{lineNo, "expected \"address data\""}
		}

		addr, err := strconv.ParseUint(fields[0], 16, 32)
		if err != nil {
			return nil, &HexError{lineNo, "invalid address"}
		}
		data, err := strconv.ParseUint(fields[1], 16, 32)
		if err != nil {
			return nil, &HexError{lineNo, "invalid data"}
		}

		if int64(addr) < lastAddr {
			return nil, &HexError{lineNo, "address out of order"}
		}

		for uint64(len(words)) < addr {
			words = append(words, 0)
		}
		if uint64(len(words)) == addr {
			words = append(words, uint32(data))
		} else {
			words[addr] = uint32(data)
		}
		lastAddr = int64(addr)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
