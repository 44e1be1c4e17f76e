package docstore

// ArrayUnion is a merge transform for Update and Batch.Update: each
// value is appended to the array field once, values already present are
// left alone. Transforms resolve against the stored document inside the
// write transaction, so concurrent unions on the same field all land.
func ArrayUnion(values ...any) any { return arrayUnion{values: values} }

// ArrayRemove is a merge transform dropping values from an array field.
func ArrayRemove(values ...any) any { return arrayRemove{values: values} }

type arrayUnion struct{ values []any }

type arrayRemove struct{ values []any }

// mergeFields applies an update's fields onto the stored base document,
// resolving array transforms against the current stored value.
func mergeFields(base, fields Document) {
	for k, v := range stripUnset(fields) {
		switch t := v.(type) {
		case arrayUnion:
			base[k] = unionInto(base[k], t.values)
		case arrayRemove:
			base[k] = removeFrom(base[k], t.values)
		default:
			base[k] = v
		}
	}
}

func unionInto(current any, values []any) []any {
	out := toValueSlice(current)
	for _, v := range values {
		if !containsValue(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func removeFrom(current any, values []any) []any {
	out := make([]any, 0)
	for _, existing := range toValueSlice(current) {
		if !containsValue(values, existing) {
			out = append(out, existing)
		}
	}
	return out
}

func toValueSlice(v any) []any {
	switch t := v.(type) {
	case []any:
		return append([]any(nil), t...)
	case []string:
		out := make([]any, 0, len(t))
		for _, s := range t {
			out = append(out, s)
		}
		return out
	default:
		return nil
	}
}

func containsValue(values []any, v any) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
