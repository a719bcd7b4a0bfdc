package main

import "testing"

func TestReadVarint(t *testing.T) {
	cases := []struct {
		name    string
		buf     []byte
		offset  int
		want    uint64
		wantN   int
		wantErr bool
	}{
		{"single byte zero", []byte{0x00}, 0, 0, 1, false},
		{"single byte max", []byte{0x7f}, 0, 0x7f, 1, false},
		{"two bytes", []byte{0x81, 0x00}, 0, 0x80, 2, false},
		{"offset into buffer", []byte{0xff, 0x81, 0x00}, 1, 0x80, 2, false},
		{"eight byte max length", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, 0, 0, 8, false},
		{"truncated", []byte{0x81}, 0, 0, 0, true},
		{"empty", []byte{}, 0, 0, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, n, err := readVarint(tc.buf, tc.offset)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got value %d n %d", got, n)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n != tc.wantN {
				t.Errorf("n = %d, want %d", n, tc.wantN)
			}
			if tc.name != "eight byte max length" && got != tc.want {
				t.Errorf("value = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestVarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 1 << 20, 1 << 40}
	for _, v := range values {
		encoded := putVarint(v)
		got, n, err := readVarint(encoded, 0)
		if err != nil {
			t.Fatalf("readVarint(%d) error: %v", v, err)
		}
		if n != len(encoded) {
			t.Errorf("value %d: consumed %d bytes, encoded length %d", v, n, len(encoded))
		}
		if got != v {
			t.Errorf("round trip value %d, got %d", v, got)
		}
	}
}
