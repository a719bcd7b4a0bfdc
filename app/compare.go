package main

// isNumeric reports whether a value's kind participates in integer
// ordering: proper integers plus the zero-width literals 0 and 1.
func isNumeric(k ValueKind) bool {
	return k == KindInteger || k == KindZero || k == KindOne
}

func numericValue(v Value) int64 {
	switch v.Kind {
	case KindZero:
		return 0
	case KindOne:
		return 1
	default:
		return v.Int
	}
}

// compareValues implements the total order of §4.6:
//  1. NULL < any non-NULL; NULL == NULL.
//  2. Same kind: natural "<" (integers numerically, text byte-wise).
//  3. Cross-kind: integer < text.
func compareValues(a, b Value) int {
	if a.Kind == KindNull && b.Kind == KindNull {
		return 0
	}
	if a.Kind == KindNull {
		return -1
	}
	if b.Kind == KindNull {
		return 1
	}

	aNum, bNum := isNumeric(a.Kind), isNumeric(b.Kind)
	switch {
	case aNum && bNum:
		av, bv := numericValue(a), numericValue(b)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case a.Kind == KindText && b.Kind == KindText:
		switch {
		case a.Text < b.Text:
			return -1
		case a.Text > b.Text:
			return 1
		default:
			return 0
		}
	case aNum && b.Kind == KindText:
		return -1
	case a.Kind == KindText && bNum:
		return 1
	default:
		return 0
	}
}

// compareKeyPrefix is the composite comparator used by index traversal
// (§4.4, §4.6): lexicographic comparison over the common prefix length.
// Trailing components of cellKey beyond len(prefix) -- notably the cell's
// row-id pointer -- do not participate.
func compareKeyPrefix(cellKey []Value, prefix []Value) int {
	n := len(prefix)
	if len(cellKey) < n {
		n = len(cellKey)
	}
	for i := 0; i < n; i++ {
		if c := compareValues(cellKey[i], prefix[i]); c != 0 {
			return c
		}
	}
	if len(cellKey) < len(prefix) {
		// Shouldn't happen for well-formed indexes; treat a short cell key
		// as less than a longer search prefix.
		return -1
	}
	return 0
}
