package repository

import (
	"strconv"
	"strings"
	"time"
)

// timeLayout is fixed-width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLite integers are signed 64-bit, so seeds are stored as decimal text.
func seedToString(seed uint64) string {
	return strconv.FormatUint(seed, 10)
}

func parseSeed(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// escapeLike escapes the LIKE wildcards of a user-supplied prefix.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
