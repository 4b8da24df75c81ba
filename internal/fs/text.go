package fs

import (
	"bytes"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"
)

const (
	textSampleSize             = 4096
	nonPrintablePercentCeiling = 30
)

type unicodeEncoding int

const (
	encodingUnknown unicodeEncoding = iota
	encodingUTF8BOM
	encodingUTF16LE
	encodingUTF16BE
)

// IsTextFile determines whether content looks like text rather than binary.
func IsTextFile(content []byte) bool {
	if len(content) == 0 {
		return true
	}

	sample := content
	if len(sample) > textSampleSize {
		sample = sample[:textSampleSize]
	}

	if detectUnicodeEncoding(sample) != encodingUnknown {
		return true
	}
	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}
	if utf8.Valid(sample) {
		return true
	}

	nonPrintable := 0
	for _, b := range sample {
		if !isCommonTextByte(b) {
			nonPrintable++
		}
	}
	return nonPrintable*100/len(sample) < nonPrintablePercentCeiling
}

// ReadTextSample returns a small sample of the file for text sniffing.
func ReadTextSample(path string) ([]byte, error) {
	return ReadFileHead(path, textSampleSize)
}

// ReadFileHead returns up to limit bytes from the beginning of path.
func ReadFileHead(path string, limit int64) ([]byte, error) {
	if limit <= 0 {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	return io.ReadAll(io.LimitReader(f, limit))
}

// Bytes read per requested preview line; generous enough that maxLines of
// ordinary text always fit in one read.
const bytesPerPreviewLine = 1024

// ReadHeadLines reads at most maxLines normalized lines from the start of
// path. The second return reports whether the file holds more content than
// was returned, so callers can offer a full load on demand.
func ReadHeadLines(path string, maxLines int) ([]string, bool, error) {
	if maxLines <= 0 {
		return nil, false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, false, err
	}

	limit := int64(maxLines) * bytesPerPreviewLine
	content, err := ReadFileHead(path, limit)
	if err != nil {
		return nil, false, err
	}

	lines := SplitTextLines(content)
	truncated := info.Size() > int64(len(content))
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		truncated = true
	}
	return lines, truncated, nil
}

// ReadAllLines reads the whole file as normalized lines.
func ReadAllLines(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return SplitTextLines(content), nil
}

// SplitTextLines decodes content (honoring Unicode BOMs) and splits it into
// NFC-normalized lines without trailing line terminators.
func SplitTextLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	text := NormalizeTextContent(content)
	text = strings.TrimSuffix(text, "\n")
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = norm.NFC.String(strings.TrimSuffix(line, "\r"))
	}
	return lines
}

// NormalizeTextContent converts known Unicode BOM-encoded content into
// UTF-8 strings.
func NormalizeTextContent(content []byte) string {
	if len(content) == 0 {
		return ""
	}

	switch detectUnicodeEncoding(content) {
	case encodingUTF8BOM:
		return string(content[3:])
	case encodingUTF16LE:
		return decodeUTF16(content, unicode.LittleEndian)
	case encodingUTF16BE:
		return decodeUTF16(content, unicode.BigEndian)
	default:
		return string(content)
	}
}

func decodeUTF16(content []byte, endian unicode.Endianness) string {
	decoder := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	out, err := decoder.Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(out)
}

func detectUnicodeEncoding(sample []byte) unicodeEncoding {
	if len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF {
		return encodingUTF8BOM
	}
	if len(sample) >= 2 {
		switch {
		case sample[0] == 0xFF && sample[1] == 0xFE:
			return encodingUTF16LE
		case sample[0] == 0xFE && sample[1] == 0xFF:
			return encodingUTF16BE
		}
	}
	return encodingUnknown
}

func isCommonTextByte(b byte) bool {
	switch {
	case b == 0x09 || b == 0x0A || b == 0x0D:
		return true
	case b >= 0x20 && b <= 0x7E:
		return true
	case b == 0x1B:
		return true
	case b >= 0x80:
		return true
	default:
		return false
	}
}
