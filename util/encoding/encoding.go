package encoding

import (
	"bytes"
	"errors"
	"fmt"
)

const (
	intMin      = 0x80 // 128
	intMax      = 0xfd // 253
	intMaxWidth = 8
	intZero     = intMin + intMaxWidth           // 136
	intSmall    = intMax - intZero - intMaxWidth // 109

	escape      byte = 0x00
	escapedTerm byte = 0x01
	escaped00   byte = 0xff
)

// EncodeUvarintAscending encodes the uint64 value using a variable length (length-prefixed) representation.
func EncodeUvarintAscending(b []byte, v uint64) []byte {
	switch {
	case v <= intSmall:
		return append(b, intZero+byte(v))
	case v <= 0xff:
		return append(b, intMax-7, byte(v))
	case v <= 0xffff:
		return append(b, intMax-6, byte(v>>8), byte(v))
	case v <= 0xffffff:
		return append(b, intMax-5, byte(v>>16), byte(v>>8), byte(v))
	case v <= 0xffffffff:
		return append(b, intMax-4, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	case v <= 0xffffffffff:
		return append(b, intMax-3, byte(v>>32), byte(v>>24), byte(v>>16), byte(v>>8),
			byte(v))
	case v <= 0xffffffffffff:
		return append(b, intMax-2, byte(v>>40), byte(v>>32), byte(v>>24), byte(v>>16),
			byte(v>>8), byte(v))
	case v <= 0xffffffffffffff:
		return append(b, intMax-1, byte(v>>48), byte(v>>40), byte(v>>32), byte(v>>24),
			byte(v>>16), byte(v>>8), byte(v))
	default:
		return append(b, intMax, byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
			byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
}

// DecodeUvarintAscending decodes a varint encoded uint64 from the input buffer.
// The remainder of the input buffer and the decoded uint64 are returned.
func DecodeUvarintAscending(b []byte) ([]byte, uint64, error) {
	if len(b) == 0 {
		return nil, 0, errors.New("insufficient bytes to decode uvarint value")
	}
	length := int(b[0]) - intZero
	b = b[1:] // skip length byte
	if length <= intSmall {
		return b, uint64(length), nil
	}
	length -= intSmall
	if length < 0 || length > 8 {
		return nil, 0, fmt.Errorf("invalid uvarint length of %d", length)
	} else if len(b) < length {
		return nil, 0, fmt.Errorf("insufficient bytes to decode uvarint value: %q", b)
	}
	var v uint64
	for _, t := range b[:length] {
		v = (v << 8) | uint64(t)
	}
	return b[length:], v, nil
}

// EncodeBytesAscending encodes data so that the result sorts in the same
// order as the raw bytes while remaining self-delimiting inside a larger
// key. Each 0x00 in data becomes 0x00 0xff and the encoding ends with the
// terminator 0x00 0x01.
func EncodeBytesAscending(b []byte, data []byte) []byte {
	for {
		i := bytes.IndexByte(data, escape)
		if i == -1 {
			break
		}
		b = append(b, data[:i]...)
		b = append(b, escape, escaped00)
		data = data[i+1:]
	}
	b = append(b, data...)
	return append(b, escape, escapedTerm)
}

// DecodeBytesAscending decodes a value encoded by EncodeBytesAscending,
// appending the decoded bytes to r. The remainder of the input buffer and
// the decoded value are returned.
func DecodeBytesAscending(b []byte, r []byte) ([]byte, []byte, error) {
	for {
		i := bytes.IndexByte(b, escape)
		if i == -1 || i == len(b)-1 {
			return nil, nil, errors.New("insufficient bytes to decode bytes value")
		}
		switch b[i+1] {
		case escapedTerm:
			r = append(r, b[:i]...)
			return b[i+2:], r, nil
		case escaped00:
			r = append(r, b[:i]...)
			r = append(r, escape)
			b = b[i+2:]
		default:
			return nil, nil, fmt.Errorf("unknown bytes escape sequence: %#x %#x", escape, b[i+1])
		}
	}
}
