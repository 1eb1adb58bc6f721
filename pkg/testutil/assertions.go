package testutil

import (
	"fmt"
	"strings"
	"testing"
)

func formatMessage(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	parts := make([]string, len(msgAndArgs))
	for i, arg := range msgAndArgs {
		parts[i] = fmt.Sprintf("%v", arg)
	}
	return strings.Join(parts, " ") + "\n"
}

// AssertFileExists checks that a file exists.
func AssertFileExists(t *testing.T, path string, msgAndArgs ...interface{}) {
	t.Helper()
	if !FileExists(t, path) {
		msg := formatMessage(msgAndArgs...)
		t.Errorf("%sFile does not exist: %s", msg, path)
	}
}

// AssertFileNotExists checks that no file exists at path.
func AssertFileNotExists(t *testing.T, path string, msgAndArgs ...interface{}) {
	t.Helper()
	if FileExists(t, path) {
		msg := formatMessage(msgAndArgs...)
		t.Errorf("%sFile should not exist: %s", msg, path)
	}
}

// AssertDirExists checks that a directory exists.
func AssertDirExists(t *testing.T, path string, msgAndArgs ...interface{}) {
	t.Helper()
	if !DirExists(t, path) {
		msg := formatMessage(msgAndArgs...)
		t.Errorf("%sDirectory does not exist: %s", msg, path)
	}
}

// AssertFileContent checks that a file exists with exactly the given content.
func AssertFileContent(t *testing.T, path, want string, msgAndArgs ...interface{}) {
	t.Helper()
	if !FileExists(t, path) {
		msg := formatMessage(msgAndArgs...)
		t.Errorf("%sFile does not exist: %s", msg, path)
		return
	}
	got := ReadFile(t, path)
	if got != want {
		msg := formatMessage(msgAndArgs...)
		t.Errorf("%sFile %s content mismatch:\n  want: %q\n  got:  %q", msg, path, want, got)
	}
}
