package importdefs

import (
	"fmt"
	"strconv"
	"strings"
)

// Replacement for characters the bulk importer cannot cope with.
const replacementChar = '·'

func nonPrintable(r rune) bool {
	return (r < 0x20 && r != '\t') || r == 0x7f
}

// CleanupText replaces control characters, newlines included, with a middle
// dot and turns tabs into spaces.
func CleanupText(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case nonPrintable(r):
			return replacementChar
		}
		return r
	}, s)
}

// CleanupID is CleanupText for identifiers. Neo4j ignores spaces in ids, so
// spaces and tabs are dropped entirely.
func CleanupID(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == ' ' || r == '\t':
			return -1
		case nonPrintable(r):
			return replacementChar
		}
		return r
	}, s)
}

// FormatValue renders a single CSV cell.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return CleanupText(x)
	case []string:
		return CleanupText(strings.Join(x, ";"))
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case fmt.Stringer:
		return CleanupText(x.String())
	default:
		return fmt.Sprint(x)
	}
}

// FormatRow applies FormatValue to every cell of row.
func FormatRow(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = FormatValue(v)
	}
	return out
}
