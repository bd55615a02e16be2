package shared

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// WithinTextLimit reports whether text fits the platform's native status
// length, counted in runes, not bytes.
func WithinTextLimit(text string, limit int) bool {
	return utf8.RuneCountInString(text) <= limit
}

func TruncateWithEllipsis(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	// https://stackoverflow.com/a/73939904/7479498
	lastSpaceIx := maxLen
	len := 0
	for i, r := range text {
		if unicode.IsSpace(r) {
			lastSpaceIx = i
		}
		len++
		if len > maxLen {
			return text[:lastSpaceIx] + "…"
		}
	}
	// If here, string is shorter or equal to maxLen
	return text
}

// JoinIds renders ids as a separator-joined decimal string, e.g. for the
// drafts table's account list column.
func JoinIds(ids []int64, sep string) string {
	strs := make([]string, 0, len(ids))
	for _, id := range ids {
		strs = append(strs, strconv.FormatInt(id, 10))
	}
	return strings.Join(strs, sep)
}

// SplitIds is the inverse of JoinIds; malformed elements are skipped.
func SplitIds(joined, sep string) []int64 {
	var res []int64
	for _, s := range strings.Split(joined, sep) {
		if s == "" {
			continue
		}
		val, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			continue
		}
		res = append(res, val)
	}
	return res
}
