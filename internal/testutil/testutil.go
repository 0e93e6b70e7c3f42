// Package testutil holds helpers shared by netupi tests.
package testutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/netupi/netupi/internal/osutil"
)

const fixtureDir = "testdata"

// CompareGoldenFile checks out against testdata/<golden>.golden. A nil out
// asserts that no golden file exists for the case. Run the tests with
// -update to rewrite the fixtures.
func CompareGoldenFile(t *testing.T, golden string, out []byte) {
	t.Helper()

	if runtime.GOOS == osutil.Windows {
		// TODO: normalise CRLF line endings before comparing
		t.Skip("skipping golden file test in Windows")
	}

	if out == nil {
		f := filepath.Join(fixtureDir, golden+".golden")
		if _, err := os.Stat(f); err == nil || errors.Is(err, os.ErrExist) {
			t.Fatalf("expected no output, but golden file exists: %s", f)
		}

		return
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir(fixtureDir),
		goldie.WithDiffEngine(goldie.ColoredDiff),
	)

	g.Assert(t, golden, out)
}

// CopyFile copies src to dst, creating or truncating dst.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copying file: %w", err)
	}

	return out.Close()
}
