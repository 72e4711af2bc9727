package registry

// lookup walks nested mappings along keys. A missing key, a non-mapping
// intermediate node or an explicit null all report not present.
func lookup(node any, keys ...string) (any, bool) {
	cur := node
	for _, key := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// flagOr returns the truthiness of the value at keys, or def when absent.
func flagOr(node any, def bool, keys ...string) bool {
	v, ok := lookup(node, keys...)
	if !ok {
		return def
	}
	return truthy(v)
}

// isTrue reports whether the value at keys is the boolean true itself.
func isTrue(node any, keys ...string) bool {
	v, ok := lookup(node, keys...)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case int:
		return x != 0
	case int64:
		return x != 0
	case uint64:
		return x != 0
	case float64:
		return x != 0
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}
