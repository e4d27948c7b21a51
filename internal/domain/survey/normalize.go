package survey

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/entities"
)

// PresentLiteral is the storage form of the "ongoing" date sentinel.
const PresentLiteral = "present"

// Normalize converts a raw row (form input or stored row) into the canonical
// record of this schema. Unknown columns are ignored. Fields whose encoding
// cannot be decoded degrade to the empty default of their kind and are
// reported in malformed; Normalize itself never fails.
func (s *Schema) Normalize(row map[string]interface{}) (entities.Record, []string) {
	rec := entities.NewRecord(s.Year)
	var malformed []string

	for _, f := range s.Fields {
		raw, ok := row[f.Name]
		if !ok || raw == nil {
			continue
		}
		v, present, ok := decode(f.Kind, raw)
		if !ok {
			malformed = append(malformed, f.Name)
		}
		if present {
			rec.Set(f.Name, v)
		}
	}
	return rec, malformed
}

// decode returns the canonical value, whether it should be stored, and
// whether the raw input was well formed.
func decode(kind entities.Kind, raw interface{}) (entities.Value, bool, bool) {
	if b, ok := raw.([]byte); ok {
		raw = string(b)
	}
	switch kind {
	case entities.KindText:
		return decodeText(raw)
	case entities.KindNumber:
		n, present, ok := decodeNumber(raw)
		return entities.NumberValue(n), present, ok
	case entities.KindYear:
		return decodeYear(raw)
	case entities.KindFlag:
		return decodeFlag(raw)
	case entities.KindSet:
		set, ok := decodeSet(raw)
		return entities.SetValue(set), true, ok
	case entities.KindAllocation:
		alloc, ok := decodeAllocation(raw)
		return entities.AllocationValue(alloc), true, ok
	case entities.KindTeam:
		team, ok := decodeTeam(raw)
		return entities.TeamValue(team), true, ok
	}
	return entities.Value{}, false, false
}

func decodeText(raw interface{}) (entities.Value, bool, bool) {
	switch v := raw.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return entities.Value{}, false, true
		}
		return entities.TextValue(v), true, true
	case float64:
		return entities.TextValue(strconv.FormatFloat(v, 'f', -1, 64)), true, true
	case int, int32, int64, bool, json.Number:
		return entities.TextValue(fmt.Sprint(v)), true, true
	}
	return entities.Value{}, false, false
}

func decodeNumber(raw interface{}) (float64, bool, bool) {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false, false
		}
		return v, true, true
	case float32:
		return float64(v), true, true
	case int:
		return float64(v), true, true
	case int32:
		return float64(v), true, true
	case int64:
		return float64(v), true, true
	case json.Number:
		n, err := v.Float64()
		return n, err == nil, err == nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false, true
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false, false
		}
		return n, true, true
	}
	return 0, false, false
}

func decodeYear(raw interface{}) (entities.Value, bool, bool) {
	if s, ok := raw.(string); ok && strings.EqualFold(strings.TrimSpace(s), PresentLiteral) {
		return entities.YearValue(entities.PresentYear), true, true
	}
	n, present, ok := decodeNumber(raw)
	return entities.YearValue(n), present, ok
}

func decodeFlag(raw interface{}) (entities.Value, bool, bool) {
	switch v := raw.(type) {
	case bool:
		return entities.FlagValue(v), true, true
	case int64:
		return entities.FlagValue(v != 0), true, true
	case float64:
		return entities.FlagValue(v != 0), true, true
	case string:
		if strings.TrimSpace(v) == "" {
			return entities.Value{}, false, true
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return entities.Value{}, false, false
		}
		return entities.FlagValue(b), true, true
	}
	return entities.Value{}, false, false
}

// parseJSON decodes a JSON-encoded string field. The empty string is a
// legitimately empty field, not a malformed one.
func parseJSON(s string, into interface{}) (empty bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return true, nil
	}
	return false, json.Unmarshal([]byte(s), into)
}

func decodeSet(raw interface{}) ([]string, bool) {
	switch v := raw.(type) {
	case []string:
		return append([]string{}, v...), true
	case []interface{}:
		return setFromSlice(v)
	case string:
		var items []interface{}
		empty, err := parseJSON(v, &items)
		if err != nil {
			return []string{}, false
		}
		if empty {
			return []string{}, true
		}
		return setFromSlice(items)
	}
	return []string{}, false
}

func setFromSlice(items []interface{}) ([]string, bool) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch it := item.(type) {
		case string:
			if it != "" {
				out = append(out, it)
			}
		case nil:
		default:
			out = append(out, fmt.Sprint(it))
		}
	}
	return out, true
}

func decodeAllocation(raw interface{}) (map[string]float64, bool) {
	switch v := raw.(type) {
	case map[string]float64:
		out := make(map[string]float64, len(v))
		for k, n := range v {
			out[k] = n
		}
		return out, true
	case map[string]interface{}:
		return allocationFromMap(v), true
	case string:
		var m map[string]interface{}
		empty, err := parseJSON(v, &m)
		if err != nil {
			return map[string]float64{}, false
		}
		if empty {
			return map[string]float64{}, true
		}
		return allocationFromMap(m), true
	}
	return map[string]float64{}, false
}

// allocationFromMap coerces non-numeric percentages to 0.
func allocationFromMap(m map[string]interface{}) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, raw := range m {
		n, _, _ := decodeNumber(raw)
		out[k] = n
	}
	return out
}

func decodeTeam(raw interface{}) ([]entities.TeamMember, bool) {
	switch v := raw.(type) {
	case []entities.TeamMember:
		return append([]entities.TeamMember{}, v...), true
	case []interface{}:
		b, err := json.Marshal(v)
		if err != nil {
			return []entities.TeamMember{}, false
		}
		return decodeTeam(string(b))
	case string:
		team := []entities.TeamMember{}
		empty, err := parseJSON(v, &team)
		if err != nil {
			return []entities.TeamMember{}, false
		}
		if empty {
			return []entities.TeamMember{}, true
		}
		return team, true
	}
	return []entities.TeamMember{}, false
}

// Serialize converts a canonical record into its storage form: composite
// fields as JSON text, the date sentinel as "present".
func (s *Schema) Serialize(rec entities.Record) map[string]interface{} {
	row := make(map[string]interface{}, len(rec.Fields))
	for _, f := range s.Fields {
		v, ok := rec.Get(f.Name)
		if !ok {
			continue
		}
		row[f.Name] = encode(v)
	}
	return row
}

func encode(v entities.Value) interface{} {
	switch v.Kind {
	case entities.KindText:
		return v.Text
	case entities.KindNumber:
		return v.Number
	case entities.KindFlag:
		return v.Flag
	case entities.KindYear:
		if v.Number == entities.PresentYear {
			return PresentLiteral
		}
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case entities.KindSet:
		return mustJSON(nonNilSet(v.Set))
	case entities.KindAllocation:
		return mustJSON(nonNilAllocation(v.Allocation))
	case entities.KindTeam:
		team := v.Team
		if team == nil {
			team = []entities.TeamMember{}
		}
		return mustJSON(team)
	}
	return nil
}

func nonNilSet(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilAllocation(m map[string]float64) map[string]float64 {
	if m == nil {
		return map[string]float64{}
	}
	return m
}

// mustJSON marshals values that cannot fail to encode (strings, float maps, structs of strings).
func mustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Columns lists the storage columns of this schema, in field order.
func (s *Schema) Columns() []string {
	cols := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		cols = append(cols, f.Name)
	}
	return cols
}
