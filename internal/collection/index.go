package collection

// LastIndex returns the last valid position for a list of count items,
// floored at zero so empty lists still have a usable anchor.
func LastIndex(count int) int {
	if count <= 0 {
		return 0
	}
	return count - 1
}

// NormalizeIndex resolves a requested position against lastIndex. Negative
// values count back from lastIndex; anything outside [0, lastIndex] pins to
// the nearest end.
func NormalizeIndex(index, lastIndex int) int {
	if lastIndex < 0 {
		lastIndex = 0
	}
	if index < 0 {
		index = lastIndex + index
	}
	if index < 0 {
		return 0
	}
	if index > lastIndex {
		return lastIndex
	}
	return index
}

// Placement resolves where an insert into a list of count items lands. A
// request at or past the last index (or any request on an empty list) is an
// append. Negative requests count back from the last index.
func Placement(index, count int) (pos int, appendAtEnd bool) {
	last := LastIndex(count)
	if count <= 0 || index >= last {
		return count, true
	}
	return NormalizeIndex(index, last), false
}

// Successor returns the position of the sibling that follows pos in a list of
// count items. ok is false when pos is the tail, in which case callers append.
func Successor(pos, count int) (next int, ok bool) {
	next = pos + 1
	if pos < 0 || next >= count {
		return 0, false
	}
	return next, true
}

// TranslateIndex maps a view-space index onto items space. positions holds
// the items-space position of every visible entry in view order. An index
// below the view maps to the first visible entry; one past the view maps to
// the slot after the last visible entry. An empty view maps to itemCount.
func TranslateIndex(positions []int, index, itemCount int) int {
	n := len(positions)
	if n == 0 {
		return itemCount
	}
	if index < 0 {
		index += n
	}
	if index < 0 {
		return positions[0]
	}
	if index >= n {
		return positions[n-1] + 1
	}
	return positions[index]
}
