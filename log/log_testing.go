//go:build testing

package log

import (
	"io"

	"github.com/rs/zerolog"
)

// Tests exercise paths that warn on purpose, keep them out of the test output.
func init() {
	logger = zerolog.New(io.Discard)
}
