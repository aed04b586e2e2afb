package bencode

import (
	"strings"
)

// The helpers below never fail: a missing key or a value of another kind
// reports ok == false. They back the permissive parts of metadata parsing.

func GetString(v *Value, key string) (string, bool) {
	r := GetByPath(v, key)
	if r == nil || r.kind != ByteString {
		return "", false
	}
	return string(r.s), true
}

func GetBytes(v *Value, key string) ([]byte, bool) {
	r := GetByPath(v, key)
	if r == nil || r.kind != ByteString {
		return nil, false
	}
	return r.s, true
}

func GetInt(v *Value, key string) (int64, bool) {
	r := GetByPath(v, key)
	if r == nil || r.kind != Integer {
		return 0, false
	}
	return r.i, true
}

func GetList(v *Value, key string) ([]*Value, bool) {
	r := GetByPath(v, key)
	if r == nil || r.kind != List {
		return nil, false
	}
	return r.l, true
}

func GetDict(v *Value, key string) (*Value, bool) {
	r := GetByPath(v, key)
	if r == nil || r.kind != Dictionary {
		return nil, false
	}
	return r, true
}

// GetByPath walks nested dictionaries along a dot separated path such as
// "info.name". It returns nil when any step is missing or not a dictionary.
// Keys containing dots cannot be addressed this way.
func GetByPath(v *Value, path string) *Value {
	if v == nil {
		return nil
	}
	m := v
	for _, part := range strings.Split(path, ".") {
		if m.kind != Dictionary {
			return nil
		}
		next, ok := m.d.Get(part)
		if !ok {
			return nil
		}
		m = next
	}
	return m
}

func CheckPath(v *Value, path string) bool {
	return GetByPath(v, path) != nil
}
