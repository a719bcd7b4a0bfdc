package main

import "testing"

func TestSerialTypeInfo(t *testing.T) {
	tests := []struct {
		code     uint64
		wantKind ValueKind
		wantW    int
	}{
		{0, KindNull, 0},
		{1, KindInteger, 1},
		{2, KindInteger, 2},
		{3, KindInteger, 3},
		{4, KindInteger, 4},
		{5, KindInteger, 6},
		{6, KindInteger, 8},
		{8, KindZero, 0},
		{9, KindOne, 0},
		{13, KindText, 0},
		{15, KindText, 1},
		{7, KindOther, 0},
		{12, KindOther, 0},
	}

	for _, tt := range tests {
		kind, width := serialTypeInfo(tt.code)
		if kind != tt.wantKind || width != tt.wantW {
			t.Errorf("serialTypeInfo(%d) = (%v, %d), want (%v, %d)", tt.code, kind, width, tt.wantKind, tt.wantW)
		}
	}
}

func TestDecodeValue(t *testing.T) {
	t.Run("null", func(t *testing.T) {
		v, n, err := decodeValue(0, nil, 0)
		if err != nil {
			t.Fatal(err)
		}
		if v.Kind != KindNull || n != 0 {
			t.Errorf("got %+v, n=%d", v, n)
		}
	})

	t.Run("one byte integer", func(t *testing.T) {
		v, n, err := decodeValue(1, []byte{0xFE}, 0)
		if err != nil {
			t.Fatal(err)
		}
		if v.Kind != KindInteger || v.Int != -2 || n != 1 {
			t.Errorf("got %+v n=%d, want Int=-2 n=1", v, n)
		}
	})

	t.Run("text", func(t *testing.T) {
		data := []byte("hello")
		v, n, err := decodeValue(13+2*5, data, 0)
		if err != nil {
			t.Fatal(err)
		}
		if v.Kind != KindText || v.Text != "hello" || n != 5 {
			t.Errorf("got %+v n=%d", v, n)
		}
	})

	t.Run("six byte integer rejected", func(t *testing.T) {
		data := make([]byte, 6)
		_, _, err := decodeValue(5, data, 0)
		if err == nil {
			t.Fatal("expected error decoding 6-byte integer")
		}
	})

	t.Run("eight byte integer rejected", func(t *testing.T) {
		data := make([]byte, 8)
		_, _, err := decodeValue(6, data, 0)
		if err == nil {
			t.Fatal("expected error decoding 8-byte integer")
		}
	})

	t.Run("float rejected", func(t *testing.T) {
		_, _, err := decodeValue(7, make([]byte, 8), 0)
		if err == nil {
			t.Fatal("expected error for float serial type")
		}
	})

	t.Run("insufficient data", func(t *testing.T) {
		_, _, err := decodeValue(4, []byte{0x01, 0x02}, 0)
		if err == nil {
			t.Fatal("expected insufficient data error")
		}
	})
}

func TestDecodeSignedInt(t *testing.T) {
	tests := []struct {
		name string
		b    []byte
		want int64
	}{
		{"one byte positive", []byte{0x7F}, 127},
		{"one byte negative", []byte{0x80}, -128},
		{"two byte", []byte{0xFF, 0xFF}, -1},
		{"three byte negative", []byte{0xFF, 0x00, 0x00}, -65536},
		{"four byte", []byte{0x00, 0x00, 0x00, 0x01}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeSignedInt(tt.b)
			if got != tt.want {
				t.Errorf("decodeSignedInt(%v) = %d, want %d", tt.b, got, tt.want)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Value{Kind: KindNull}, ""},
		{Value{Kind: KindZero}, "0"},
		{Value{Kind: KindOne}, "1"},
		{Value{Kind: KindInteger, Int: -42}, "-42"},
		{Value{Kind: KindText, Text: "abc"}, "abc"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
