package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Byte order marks recognized by the CSV decoder.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

func loadCSV(path string, data []byte) (*RawTable, error) {
	decoded, err := decodeToUTF8(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	// Width mismatches are handled in buildTable rather than rejected.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: failed to parse CSV: %w", path, err)
		}
		rows = append(rows, row)
	}

	return buildTable(path, "", rows)
}

// decodeToUTF8 sniffs the byte order mark and converts the input to
// UTF-8. BOM-less input that is not valid UTF-8 is treated as Latin-1,
// which cannot fail and covers legacy exports.
func decodeToUTF8(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return data[len(bomUTF8):], nil
	case bytes.HasPrefix(data, bomUTF16LE):
		return decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), data, "UTF-16LE")
	case bytes.HasPrefix(data, bomUTF16BE):
		return decodeWith(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), data, "UTF-16BE")
	case utf8.Valid(data):
		return data, nil
	default:
		return decodeWith(charmap.ISO8859_1, data, "Latin-1")
	}
}

func decodeWith(enc encoding.Encoding, data []byte, name string) ([]byte, error) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s decode failed: %w", name, err)
	}
	return out, nil
}
