package frame

import "bytes"

// Split cuts buf at every occurrence of delim, excluding the delimiter
// byte itself, preserving original order. Zero-length candidates from
// leading, trailing, or adjacent delimiters are kept so that callers can
// reason about candidate positions and lengths. An empty buffer yields no
// candidates. The returned slices alias buf; Split never copies.
//
// This is a byte-pattern split, not protocol-aware framing: a delimiter
// byte inside a sample payload cuts that frame short, leaving a truncated
// tail candidate. That ambiguity is inherited from the sensor protocol,
// which has no escaping. Rejoining the candidates with delim reconstructs
// buf exactly.
func Split(buf []byte, delim byte) [][]byte {
	if len(buf) == 0 {
		return nil
	}
	return bytes.Split(buf, []byte{delim})
}

// FramingStrategy turns a raw capture into candidate frames. Strategies
// must preserve stream order and must not drop bytes silently: every byte
// of the capture (delimiters and prefixes aside) ends up in exactly one
// candidate.
type FramingStrategy interface {
	Frames(buf []byte) [][]byte
}

// NaiveFraming splits on every delimiter occurrence. It reproduces the
// sensor's observed wire behaviour and is the default strategy.
type NaiveFraming struct {
	// Delim overrides the delimiter byte. Zero means Delimiter.
	Delim byte
}

func (s NaiveFraming) delim() byte {
	if s.Delim == 0 {
		return Delimiter
	}
	return s.Delim
}

// Frames implements FramingStrategy.
func (s NaiveFraming) Frames(buf []byte) [][]byte {
	return Split(buf, s.delim())
}

// LengthPrefixedFraming is the strict framing variant for protocol
// revisions that can declare frame lengths: each delimiter is followed by
// a single length byte, then exactly that many frame bytes. Payload
// delimiter bytes no longer terminate a frame.
//
// The strategy degrades rather than drops: bytes before the first
// delimiter form a leading candidate, a length prefix that overruns the
// buffer yields the truncated remainder as-is, and trailing bytes after a
// well-formed frame that are not introduced by a delimiter are emitted as
// one final raw candidate.
type LengthPrefixedFraming struct {
	// Delim overrides the delimiter byte. Zero means Delimiter.
	Delim byte
}

func (s LengthPrefixedFraming) delim() byte {
	if s.Delim == 0 {
		return Delimiter
	}
	return s.Delim
}

// Frames implements FramingStrategy.
func (s LengthPrefixedFraming) Frames(buf []byte) [][]byte {
	if len(buf) == 0 {
		return nil
	}
	delim := s.delim()

	i := bytes.IndexByte(buf, delim)
	if i < 0 {
		return [][]byte{buf}
	}

	out := [][]byte{buf[:i]}
	for i < len(buf) {
		// buf[i] is a delimiter; the length prefix follows.
		if i+1 >= len(buf) {
			out = append(out, buf[len(buf):])
			break
		}
		n := int(buf[i+1])
		start := i + 2
		if start+n > len(buf) {
			out = append(out, buf[start:])
			break
		}
		out = append(out, buf[start:start+n])

		next := start + n
		if next >= len(buf) {
			break
		}
		if buf[next] != delim {
			out = append(out, buf[next:])
			break
		}
		i = next
	}
	return out
}
