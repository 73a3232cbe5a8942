package board

import "strconv"

// logMutation records a state change at debug level.
func (b *Board) logMutation(action, id, detail string) {
	keyvals := []any{"action", action}
	if id != "" {
		keyvals = append(keyvals, "id", id)
	}
	if detail != "" {
		keyvals = append(keyvals, "detail", detail)
	}
	b.log.Debug("board mutation", keyvals...)
}

func pluralCount(n int, noun string) string {
	s := strconv.Itoa(n) + " " + noun
	if n != 1 {
		s += "s"
	}
	return s
}
