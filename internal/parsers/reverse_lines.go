package parsers

import "bytes"

// reverseLineReader yields the lines of a buffer from the last one to the first without
// splitting the whole buffer up front. Line terminators ("\n" or "\r\n") are stripped and
// blank lines are skipped.
type reverseLineReader struct {
	buf []byte
	end int
}

func newReverseLineReader(buf []byte) *reverseLineReader {
	return &reverseLineReader{buf: buf, end: len(buf)}
}

// Next returns the previous non-blank line. The returned slice aliases the buffer.
func (r *reverseLineReader) Next() ([]byte, bool) {
	for r.end >= 0 {
		start := bytes.LastIndexByte(r.buf[:r.end], '\n') + 1
		line := bytes.TrimSuffix(r.buf[start:r.end], []byte{'\r'})
		r.end = start - 1
		if len(bytes.TrimSpace(line)) > 0 {
			return line, true
		}
	}
	return nil, false
}
