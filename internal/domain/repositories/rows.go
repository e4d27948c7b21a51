package repositories

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Cada backend devolve as colunas em tipos diferentes: time.Time e []byte no
// driver SQL, strings e float64 no JSON do PostgREST.

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

func stringOf(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	}
	return fmt.Sprint(v)
}

func intOf(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case []byte, string:
		i, _ := strconv.Atoi(strings.TrimSpace(stringOf(n)))
		return i
	}
	return 0
}

func boolOf(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	case []byte, string:
		ok, _ := strconv.ParseBool(stringOf(b))
		return ok
	}
	return false
}

func timeOf(v interface{}) *time.Time {
	switch t := v.(type) {
	case time.Time:
		return &t
	case *time.Time:
		return t
	case []byte, string:
		s := strings.TrimSpace(stringOf(t))
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return &parsed
			}
		}
	}
	return nil
}

func timeOrZero(v interface{}) time.Time {
	if t := timeOf(v); t != nil {
		return *t
	}
	return time.Time{}
}
