package validation

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxFieldLength is the number of characters kept from any forwarded value.
const MaxFieldLength = 500

// formulaPrefix is prepended to values a spreadsheet would treat as a formula.
const formulaPrefix = "'"

// Sanitize turns an arbitrary decoded JSON value into the text that is
// safe to write into a spreadsheet cell.
//
// Falsy input (nil, "", 0, false) becomes "". Anything else is turned
// into text, trimmed, and cut to MaxFieldLength characters. If what is
// left starts with '=', '+', '-' or '@', a single quote is prepended, so
// the result is at most MaxFieldLength+1 characters long.
func Sanitize(input any) string {
	if !Truthy(input) {
		return ""
	}

	s := trimSpace(toText(input))
	s = truncate(s, MaxFieldLength)

	if s != "" && strings.ContainsRune("=+-@", rune(s[0])) {
		return formulaPrefix + s
	}

	return s
}

// Truthy reports whether a decoded JSON value counts as "set".
// nil, "", 0 and false do not; every object and array does.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	default:
		return true
	}
}

func toText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			if item != nil {
				parts[i] = toText(item)
			}
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

// byteOrderMark is invisible in a cell but is not Unicode white space, so
// strings.TrimSpace keeps it and a formula behind it would go unescaped.
const byteOrderMark = '\uFEFF'

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == byteOrderMark
}

// trimSpace removes surrounding white space, byte order marks included.
func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)
	return string(runes[:limit])
}
