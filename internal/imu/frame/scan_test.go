package frame

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want [][]byte
	}{
		{
			name: "empty buffer yields no candidates",
			buf:  nil,
			want: nil,
		},
		{
			name: "no delimiter yields whole buffer",
			buf:  []byte("abc"),
			want: [][]byte{[]byte("abc")},
		},
		{
			name: "leading delimiter keeps empty candidate",
			buf:  []byte(":abc"),
			want: [][]byte{{}, []byte("abc")},
		},
		{
			name: "trailing delimiter keeps empty candidate",
			buf:  []byte("abc:"),
			want: [][]byte{[]byte("abc"), {}},
		},
		{
			name: "adjacent delimiters keep empty candidate",
			buf:  []byte("a::b"),
			want: [][]byte{[]byte("a"), {}, []byte("b")},
		},
		{
			name: "three frames",
			buf:  []byte("one:two:three"),
			want: [][]byte{[]byte("one"), []byte("two"), []byte("three")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.buf, Delimiter)
			if diff := cmp.Diff(tt.want, got, cmp.Comparer(bytes.Equal)); diff != "" {
				t.Errorf("Split mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Rejoining the candidates with the delimiter must reconstruct the
// original buffer byte-for-byte.
func TestSplitRoundTrip(t *testing.T) {
	buffers := [][]byte{
		nil,
		{Delimiter},
		{Delimiter, Delimiter, Delimiter},
		[]byte("no delimiters at all"),
		[]byte(":leading"),
		[]byte("trailing:"),
		{0x00, Delimiter, 0xFF, 0xFE, Delimiter, Delimiter, 0x01},
	}

	for _, buf := range buffers {
		parts := Split(buf, Delimiter)
		rejoined := bytes.Join(parts, []byte{Delimiter})
		if !bytes.Equal(rejoined, buf) {
			t.Errorf("round trip failed for %q: got %q", buf, rejoined)
		}
	}
}

// A delimiter byte inside a payload cuts the frame in two under naive
// framing. The truncated tail is preserved as its own candidate rather
// than repaired or dropped.
func TestSplitDelimiterInsidePayload(t *testing.T) {
	head := bytes.Repeat([]byte{0x00}, PayloadOffset)
	payload := []byte{0x01, Delimiter, 0x02, 0x03}
	buf := append(append([]byte{}, head...), payload...)

	got := Split(buf, Delimiter)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if len(got[0]) != PayloadOffset+1 {
		t.Errorf("head candidate length = %d, want %d", len(got[0]), PayloadOffset+1)
	}
	if _, err := (Decoder{}).Decode(got[1]); err == nil {
		t.Error("expected truncated tail candidate to fail decoding")
	}
}

func TestNaiveFramingDefaults(t *testing.T) {
	got := NaiveFraming{}.Frames([]byte("a:b"))
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
}

func TestLengthPrefixedFraming(t *testing.T) {
	d := Delimiter
	tests := []struct {
		name string
		buf  []byte
		want [][]byte
	}{
		{
			name: "empty buffer",
			buf:  nil,
			want: nil,
		},
		{
			name: "no delimiter yields whole buffer",
			buf:  []byte{0x01, 0x02},
			want: [][]byte{{0x01, 0x02}},
		},
		{
			name: "single prefixed frame",
			buf:  []byte{d, 3, 0x0A, d, 0x0B},
			want: [][]byte{{}, {0x0A, d, 0x0B}},
		},
		{
			name: "payload delimiter does not terminate frame",
			buf:  []byte{0xFF, d, 2, d, d, d, 1, 0x42},
			want: [][]byte{{0xFF}, {d, d}, {0x42}},
		},
		{
			name: "prefix overrunning buffer degrades to remainder",
			buf:  []byte{d, 9, 0x01, 0x02},
			want: [][]byte{{}, {0x01, 0x02}},
		},
		{
			name: "delimiter as final byte yields empty candidate",
			buf:  []byte{0x01, d},
			want: [][]byte{{0x01}, {}},
		},
		{
			name: "junk after frame kept as raw candidate",
			buf:  []byte{d, 1, 0x0A, 0x0B, 0x0C},
			want: [][]byte{{}, {0x0A}, {0x0B, 0x0C}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LengthPrefixedFraming{}.Frames(tt.buf)
			if diff := cmp.Diff(tt.want, got, cmp.Comparer(bytes.Equal)); diff != "" {
				t.Errorf("Frames mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
