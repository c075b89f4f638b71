// Package clipboard places text on the host clipboard.
package clipboard

import (
	"errors"
	"log/slog"

	"github.com/atotto/clipboard"
)

// Writer accepts text for the clipboard
type Writer interface {
	WriteAll(text string) error
}

// System writes through xclip/xsel/wl-copy, pbcopy or the Windows API
type System struct{}

// WriteAll copies text to the system clipboard
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errUnsupported
	}
	return clipboard.WriteAll(text)
}

var errUnsupported = errors.New("no clipboard utility available")

// Copy writes text and swallows failures; they are only logged at debug level
func Copy(w Writer, text string, logger *slog.Logger) {
	if w == nil {
		return
	}
	if err := w.WriteAll(text); err != nil && logger != nil {
		logger.Debug("clipboard copy failed", "error", err)
	}
}
