package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/quandary/internal/config"
)

// TestFunctional runs every testdata program with a .want file through Main
// and compares stdout plus the exit code with it. The first line of a
// program is "// args: [OPTIONS] INTEGER_ARGUMENT".
func TestFunctional(t *testing.T) {
	t.Setenv(config.ConfigEnvVar, "")

	var testFiles []string
	for _, ext := range config.SourceFileExtensions {
		matches, err := filepath.Glob(filepath.Join("testdata", "*"+ext))
		if err != nil {
			t.Fatal(err)
		}
		testFiles = append(testFiles, matches...)
	}
	if len(testFiles) == 0 {
		t.Skip("No test files with .want found")
	}

	for _, testFile := range testFiles {
		testName := strings.TrimSuffix(filepath.Base(testFile), filepath.Ext(testFile))

		t.Run(testName, func(t *testing.T) {
			wantFile := strings.TrimSuffix(testFile, filepath.Ext(testFile)) + ".want"
			wantBytes, err := os.ReadFile(wantFile)
			if err != nil {
				t.Skipf("no .want file: %v", err)
			}

			args, err := programArgs(testFile)
			if err != nil {
				t.Fatal(err)
			}
			n := len(args)
			argv := append(append([]string{}, args[:n-1]...), testFile, args[n-1])

			var stdout, stderr bytes.Buffer
			code := Main(context.Background(), argv, &stdout, &stderr)

			got := strings.TrimSpace(fmt.Sprintf("%s[exit %d]", stdout.String(), code))
			want := strings.TrimSpace(strings.ReplaceAll(string(wantBytes), "\r\n", "\n"))
			if got != want {
				t.Errorf("Output mismatch:\n--- want ---\n%s\n--- got ---\n%s", want, got)
			}
		})
	}
}

func programArgs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, fmt.Errorf("%s: empty program", path)
	}
	line, ok := strings.CutPrefix(strings.TrimSpace(scanner.Text()), "// args:")
	if !ok {
		return nil, fmt.Errorf("%s: first line must be // args: ...", path)
	}
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil, fmt.Errorf("%s: no integer argument", path)
	}
	return args, nil
}
