package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// TeeWriter duplicates every write to all of its writers. A failing writer does not
// stop the rest; the errors are combined into one.
type TeeWriter struct {
	writers []io.Writer
}

func NewTeeWriter(writers ...io.Writer) *TeeWriter {
	return &TeeWriter{writers: writers}
}

// Write reports len(p) when at least one writer took the whole chunk.
func (t *TeeWriter) Write(p []byte) (int, error) {
	var (
		errs      error
		delivered bool
	)
	for _, w := range t.writers {
		n, err := w.Write(p)
		if err == nil && n < len(p) {
			err = io.ErrShortWrite
		}
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		delivered = true
	}

	if !delivered && len(t.writers) > 0 {
		return 0, errs
	}
	return len(p), errs
}
