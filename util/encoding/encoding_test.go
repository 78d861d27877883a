package encoding

import (
	"bytes"
	"math"
	"testing"
)

func TestEncodeDecodeUvarintAscending(t *testing.T) {
	values := []uint64{0, 1, 109, 110, 255, 256, 1 << 16, 1 << 24, 1 << 32, 1 << 40, 1 << 48, 1 << 56, math.MaxUint64}
	var prev []byte
	for _, v := range values {
		enc := EncodeUvarintAscending(nil, v)
		rest, dec, err := DecodeUvarintAscending(enc)
		if err != nil {
			t.Fatalf("decode %d: %v", v, err)
		}
		if dec != v {
			t.Errorf("roundtrip %d got %d", v, dec)
		}
		if len(rest) != 0 {
			t.Errorf("decode %d left %d bytes", v, len(rest))
		}
		if prev != nil && bytes.Compare(prev, enc) >= 0 {
			t.Errorf("encoding of %d does not sort above its predecessor", v)
		}
		prev = enc
	}
}

func TestDecodeUvarintErrors(t *testing.T) {
	if _, _, err := DecodeUvarintAscending(nil); err == nil {
		t.Error("expected error on empty input")
	}
	// Length byte promises more bytes than are present.
	if _, _, err := DecodeUvarintAscending([]byte{0xfd, 0x01}); err == nil {
		t.Error("expected error on truncated input")
	}
}

func TestEncodeDecodeBytesAscending(t *testing.T) {
	values := [][]byte{
		{},
		[]byte("a"),
		[]byte("knows"),
		{0x00},
		{0x00, 0xff, 0x00},
		{0x00, 0x01},
		[]byte("with\x00zero"),
		{0xff, 0xff},
	}
	for _, v := range values {
		enc := EncodeBytesAscending(nil, v)
		rest, dec, err := DecodeBytesAscending(enc, nil)
		if err != nil {
			t.Fatalf("decode %q: %v", v, err)
		}
		if !bytes.Equal(dec, v) {
			t.Errorf("roundtrip %q got %q", v, dec)
		}
		if len(rest) != 0 {
			t.Errorf("decode %q left %d bytes", v, len(rest))
		}
	}
}

func TestEncodeBytesAscendingOrder(t *testing.T) {
	values := [][]byte{
		{},
		{0x00},
		{0x00, 0x00},
		{0x00, 0x01},
		{0x01},
		[]byte("a"),
		[]byte("aa"),
		[]byte("b"),
		{0xff},
	}
	for i := 1; i < len(values); i++ {
		a := EncodeBytesAscending(nil, values[i-1])
		b := EncodeBytesAscending(nil, values[i])
		if bytes.Compare(a, b) >= 0 {
			t.Errorf("%q does not sort below %q after encoding", values[i-1], values[i])
		}
	}
}

func TestDecodeBytesAscendingSuffix(t *testing.T) {
	enc := EncodeBytesAscending(nil, []byte("name"))
	enc = append(enc, 0xde, 0xad)
	rest, dec, err := DecodeBytesAscending(enc, nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(dec) != "name" {
		t.Errorf("got %q", dec)
	}
	if !bytes.Equal(rest, []byte{0xde, 0xad}) {
		t.Errorf("remainder %x", rest)
	}
}

func TestDecodeBytesAscendingErrors(t *testing.T) {
	for _, bad := range [][]byte{
		nil,
		{0x61},
		{0x00},
		{0x61, 0x00, 0x02},
	} {
		if _, _, err := DecodeBytesAscending(bad, nil); err == nil {
			t.Errorf("expected error decoding %x", bad)
		}
	}
}
