package pipeline

// Shared test helpers for the pipeline package.

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ocrtools/pdfprep/config"
)

// ---- assertion helpers -----------------------------------------------------

func assertNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func assertErr(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
}

func assertContains(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("expected %q to contain %q", got, want)
	}
}

// ---- fixtures --------------------------------------------------------------

// newTestPreprocessor clears the package's environment variables and returns
// a Preprocessor with default configuration. Individual tests layer their
// own t.Setenv overrides before calling it.
func newTestPreprocessor(t *testing.T) *Preprocessor {
	t.Helper()
	for _, name := range []string{
		config.EnvRasterizer, config.EnvOCR, config.EnvRotator,
		config.EnvDigitWidth, config.EnvLegacyStem, config.EnvStrictRotate,
	} {
		t.Setenv(name, "")
	}
	return NewPreprocessor()
}

// withNoTool overrides lookPath for the duration of f so tests can exercise
// the binary-absent code paths regardless of what is installed.
func withNoTool(t *testing.T, f func()) {
	t.Helper()
	orig := lookPath
	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	defer func() { lookPath = orig }()
	f()
}

// installStubTool writes an executable shell script named name into a fresh
// temp dir and prepends that dir to PATH, so subprocess invocations of name
// hit the stub. The script body runs under /bin/sh.
func installStubTool(t *testing.T, name, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub tools require a POSIX shell")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatalf("installStubTool: %v", err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// writeTempFile writes content to a temp file with the given name and returns
// its path. The file is cleaned up automatically when the test ends.
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writeTempFile: %v", err)
	}
	return path
}

// makePDF builds a minimal but well-formed PDF with the given number of
// empty pages and returns its path.
func makePDF(t *testing.T, pages int) string {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	addObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}
	addObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	addObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), pages))
	for i := 0; i < pages; i++ {
		addObj(fmt.Sprintf(
			"%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>\nendobj\n",
			3+i))
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefOffset)

	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("makePDF: %v", err)
	}
	return path
}
