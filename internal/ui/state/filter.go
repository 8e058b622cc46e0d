package state

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Query is an editable filter string with a rune cursor.
type Query struct {
	Text   string
	Cursor int
}

// Trimmed returns the query without surrounding whitespace.
func (q *Query) Trimmed() string {
	return strings.TrimSpace(q.Text)
}

// Set replaces the text and clamps the cursor.
func (q *Query) Set(text string, cursor int) {
	q.Text = text
	runes := []rune(text)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	q.Cursor = cursor
}

// Pos returns the rune offset of the cursor.
func (q *Query) Pos() int {
	runes := []rune(q.Text)
	if q.Cursor < 0 {
		return 0
	}
	if q.Cursor > len(runes) {
		return len(runes)
	}
	return q.Cursor
}

// Insert inserts text at the cursor position.
func (q *Query) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(q.Text)
	pos := q.Pos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	q.Set(string(updated), pos+len(insert))
	return true
}

// DeleteRuneBackward deletes a rune before the cursor.
func (q *Query) DeleteRuneBackward() bool {
	runes := []rune(q.Text)
	pos := q.Pos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	q.Set(string(updated), pos-1)
	return true
}

// DeleteWordBackward deletes the word preceding the cursor.
func (q *Query) DeleteWordBackward() bool {
	runes := []rune(q.Text)
	pos := q.Pos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStart(runes, pos)
	updated := append(runes[:i], runes[pos:]...)
	q.Set(string(updated), i)
	return true
}

// MoveStart moves the cursor to the start.
func (q *Query) MoveStart() bool {
	if q.Pos() == 0 {
		return false
	}
	q.Cursor = 0
	return true
}

// MoveEnd moves the cursor to the end.
func (q *Query) MoveEnd() bool {
	end := len([]rune(q.Text))
	if q.Pos() == end {
		return false
	}
	q.Cursor = end
	return true
}

// MoveWordBackward moves the cursor one word backward.
func (q *Query) MoveWordBackward() bool {
	runes := []rune(q.Text)
	pos := q.Pos()
	if pos == 0 {
		return false
	}
	i := wordStart(runes, pos)
	if i == pos {
		return false
	}
	q.Cursor = i
	return true
}

// MoveWordForward moves the cursor one word forward.
func (q *Query) MoveWordForward() bool {
	runes := []rune(q.Text)
	pos := q.Pos()
	if pos >= len(runes) {
		return false
	}
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	q.Cursor = i
	return true
}

// MoveRuneBackward moves the cursor one rune backward.
func (q *Query) MoveRuneBackward() bool {
	if q.Pos() == 0 {
		return false
	}
	q.Cursor = q.Pos() - 1
	return true
}

// MoveRuneForward moves the cursor one rune forward.
func (q *Query) MoveRuneForward() bool {
	if q.Pos() >= len([]rune(q.Text)) {
		return false
	}
	q.Cursor = q.Pos() + 1
	return true
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}

// Match reports which labels satisfy query. Fuzzy matches win; when there are
// none, case-insensitive substring matches against labels and ids are used.
func Match(query string, labels, ids []string) []bool {
	out := make([]bool, len(labels))
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		for i := range out {
			out[i] = true
		}
		return out
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) > 0 {
		for _, rank := range ranks {
			out[rank.OriginalIndex] = true
		}
		return out
	}
	lower := strings.ToLower(trimmed)
	for i, label := range labels {
		if strings.Contains(strings.ToLower(label), lower) {
			out[i] = true
			continue
		}
		if i < len(ids) && strings.Contains(strings.ToLower(ids[i]), lower) {
			out[i] = true
		}
	}
	return out
}

// BestMatchIndex returns the best index for the query among labels, or -1
// when labels is empty.
func BestMatchIndex(labels []string, query string) int {
	if len(labels) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, label := range labels {
		if strings.EqualFold(label, trimmed) {
			return i
		}
	}
	for i, label := range labels {
		if strings.HasPrefix(strings.ToLower(label), lower) {
			return i
		}
	}
	for i, label := range labels {
		if strings.Contains(strings.ToLower(label), lower) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}
