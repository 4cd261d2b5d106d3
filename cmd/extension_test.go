package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// createExtension writes an executable shell script pay-<name> in a
// directory prepended to PATH.
func createExtension(t *testing.T, name, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts")
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pay-"+name), []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatalf("Failed to write extension: %v", err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestRunExtension(t *testing.T) {
	createExtension(t, "hello", `echo "args=$*"
echo "config=$PAY_CONFIG"
echo "verbose=$PAY_VERBOSE"
`)
	oldConfig, oldVerbose := *configFile, *verbose
	*configFile, *verbose = "custom.yaml", true
	defer func() { *configFile, *verbose = oldConfig, oldVerbose }()

	var b bytes.Buffer
	oldStdout := stdout
	stdout = &b
	defer func() { stdout = oldStdout }()

	found, code := RunExtension("hello", []string{"a", "b"})
	if !found || code != 0 {
		t.Fatalf("RunExtension() = %v, %d; want true, 0", found, code)
	}
	for _, want := range []string{"args=a b", "config=custom.yaml", "verbose=true"} {
		if !strings.Contains(b.String(), want) {
			t.Errorf("Expected output to contain %q, but got:\n%s", want, b.String())
		}
	}
}

func TestRunExtension_ExitCode(t *testing.T) {
	createExtension(t, "fail", "exit 3\n")
	if found, code := RunExtension("fail", nil); !found || code != 3 {
		t.Errorf("RunExtension() = %v, %d; want true, 3", found, code)
	}
}

func TestRunExtension_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, _ := RunExtension("nope", nil); found {
		t.Errorf("RunExtension() found a missing extension")
	}
}
