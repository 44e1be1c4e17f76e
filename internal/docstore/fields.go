package docstore

import "time"

// Typed accessors for decoding documents back into domain records.
// JSON decoding leaves strings, float64s, bools and []any behind; these
// helpers normalize them.

// ReadString returns the string value of a field, or "" if unset.
func ReadString(doc Document, field string) string {
	s, _ := doc[field].(string)
	return s
}

// ReadBool returns the bool value of a field, or false if unset.
func ReadBool(doc Document, field string) bool {
	b, _ := doc[field].(bool)
	return b
}

// ReadInt returns the numeric value of a field, or 0 if unset.
func ReadInt(doc Document, field string) int {
	switch v := doc[field].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// ReadStringSlice returns the string-slice value of a field.
func ReadStringSlice(doc Document, field string) []string {
	switch v := doc[field].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// ReadTime normalizes a server-generated timestamp field to a local
// time value. A record lacking the field, or holding one that does not
// parse, defaults to the current time rather than failing.
func ReadTime(doc Document, field string) time.Time {
	s, ok := doc[field].(string)
	if !ok {
		return time.Now()
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Now()
	}
	return t.Local()
}

// WriteTime formats a timestamp for storage.
func WriteTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
