package wos

import (
	"bytes"
	"unicode/utf16"
	"unicode/utf8"
)

// Web of Science exports arrive either as UTF-8 (with or without a BOM) or
// as UTF-16 with a BOM. decodeExport sniffs the BOM and returns UTF-8 text.
func decodeExport(data []byte) []byte {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return data[3:]
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return decodeUTF16(data[2:], false)
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return decodeUTF16(data[2:], true)
	default:
		return data
	}
}

func decodeUTF16(data []byte, bigEndian bool) []byte {
	units := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		if bigEndian {
			units = append(units, uint16(data[i])<<8|uint16(data[i+1]))
		} else {
			units = append(units, uint16(data[i+1])<<8|uint16(data[i]))
		}
	}

	var buf bytes.Buffer
	buf.Grow(len(data))
	for _, r := range utf16.Decode(units) {
		var tmp [utf8.UTFMax]byte
		n := utf8.EncodeRune(tmp[:], r)
		buf.Write(tmp[:n])
	}
	return buf.Bytes()
}
