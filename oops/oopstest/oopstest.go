// Package oopstest provides test assertions for oops-wrapped errors.
package oopstest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"signposting/oops"
)

// RequireNoError fails the test like require.NoError, but renders the stack
// trace an oops error carries so the failure points at the wrap site.
func RequireNoError(t *testing.T, err error, msgAndArgs ...any) {
	if err == nil {
		return
	}
	t.Helper()
	if sterr, ok := err.(*oops.Error); ok {
		// Error() already renders the message together with the stack trace
		require.Fail(t, fmt.Sprintf("Received unexpected error:\n%s", sterr.Error()), msgAndArgs...)
	} else {
		require.Fail(t, fmt.Sprintf("Received unexpected error:\n%+v", err), msgAndArgs...)
	}
}
