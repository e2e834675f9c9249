// Package propfile reads and writes the key/value property files backing the
// value store. Files use the Java .properties syntax in ISO-8859-1, with
// characters outside ASCII written as \uXXXX escapes (UTF-16 surrogate pairs
// above U+FFFF), so Java tooling reads them back unchanged.
package propfile

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/magiconair/properties"

	"github.com/arthur-debert/buildprops/pkg/errors"
)

// Header is the comment written at the top of every property file.
const Header = "created by buildprops"

// Decode parses a property file. Values are taken literally: ${...}
// references are not expanded.
func Decode(data []byte) (map[string]string, error) {
	loader := &properties.Loader{
		Encoding:         properties.UTF8,
		DisableExpansion: true,
	}
	props, err := loader.LoadBytes([]byte(joinSurrogates(latin1(data))))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to parse property file")
	}
	return props.Map(), nil
}

// Encode renders values as a property file with keys in sorted order. The
// result is plain ASCII.
func Encode(values map[string]string) ([]byte, error) {
	props := properties.NewProperties()
	props.DisableExpansion = true

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if _, _, err := props.Set(k, values[k]); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to encode property %s", k)
		}
	}

	var body bytes.Buffer
	if _, err := props.Write(&body, properties.UTF8); err != nil {
		return nil, errors.Wrap(err, errors.ErrFileWrite, "failed to encode property file")
	}

	var buf bytes.Buffer
	buf.WriteString("# " + Header + "\n")
	buf.WriteString(escapeNonASCII(body.String()))
	return buf.Bytes(), nil
}

// latin1 decodes ISO-8859-1 bytes.
func latin1(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		b.WriteRune(rune(c))
	}
	return b.String()
}

// escapeNonASCII replaces every rune above ASCII with its \uXXXX escape.
func escapeNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r < 0x80:
			b.WriteRune(r)
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&b, `\u%04X\u%04X`, hi, lo)
		default:
			fmt.Fprintf(&b, `\u%04X`, r)
		}
	}
	return b.String()
}

// joinSurrogates replaces escaped UTF-16 surrogate pairs with the character
// they encode. Other escapes are copied unchanged.
func joinSurrogates(s string) string {
	if !strings.Contains(s, `\u`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			i++
			continue
		}
		if hi, ok := escapedUnit(s, i); ok && utf16.IsSurrogate(hi) {
			if lo, ok := escapedUnit(s, i+6); ok {
				if r := utf16.DecodeRune(hi, lo); r != unicode.ReplacementChar {
					b.WriteRune(r)
					i += 12
					continue
				}
			}
		}
		// the escaped character must not start another escape
		end := min(i+2, len(s))
		b.WriteString(s[i:end])
		i = end
	}
	return b.String()
}

// escapedUnit parses a \uXXXX escape starting at s[i].
func escapedUnit(s string, i int) (rune, bool) {
	if i+6 > len(s) || s[i] != '\\' || s[i+1] != 'u' {
		return 0, false
	}
	n, err := strconv.ParseUint(s[i+2:i+6], 16, 16)
	if err != nil {
		return 0, false
	}
	return rune(n), true
}
