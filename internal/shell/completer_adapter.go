package shell

import (
	"context"
	"strings"
	"time"

	"xcsh/internal/completion"
)

// completionTimeout bounds one Tab press. Slow completions degrade to
// nothing rather than freezing the prompt.
const completionTimeout = 2 * time.Second

// readlineCompleter adapts the completion engine to readline's
// AutoCompleter contract.
type readlineCompleter struct {
	completer *completion.Completer
}

// Do completes the word ending at pos. readline expects candidates as
// suffixes relative to the current word, plus the word's length.
func (r *readlineCompleter) Do(line []rune, pos int) ([][]rune, int) {
	partial := string(line[:pos])

	wordStart := strings.LastIndexAny(partial, " \t") + 1
	word := partial[wordStart:]

	// The engine returns suggestion texts without the "/" escape, so a
	// "/dn" word matches against "dn".
	match := word
	if wordStart == 0 {
		match = strings.TrimPrefix(word, "/")
	}

	ctx, cancel := context.WithTimeout(context.Background(), completionTimeout)
	defer cancel()

	suggestions := r.completer.Complete(ctx, partial)

	var candidates [][]rune
	for _, s := range suggestions {
		if len(s.Text) < len(match) || !strings.EqualFold(s.Text[:len(match)], match) {
			continue
		}
		candidates = append(candidates, []rune(s.Text[len(match):]+" "))
	}
	return candidates, len([]rune(match))
}
