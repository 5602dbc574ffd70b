package domain

import "strings"

// Fields is the persistable projection of a draft: the set of fields a save
// operation is allowed to write. Empty strings, nil numbers, and lists that
// normalize to empty are never present, so a partial update can not blank an
// existing value. id, userId, and createdAt are never carried here; the
// storage layer owns all three.
type Fields map[string]any

func (f Fields) setString(key, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	f[key] = value
}

func (f Fields) setStringList(key string, values []string) {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			cleaned = append(cleaned, v)
		}
	}
	if len(cleaned) == 0 {
		return
	}
	f[key] = cleaned
}

func (f Fields) setFloat(key string, value *float64) {
	if value == nil {
		return
	}
	f[key] = *value
}

func (f Fields) setMap(key string, value Fields) {
	if len(value) == 0 {
		return
	}
	f[key] = value
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
