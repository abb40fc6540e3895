package harness

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAll runs all data-driven cases under testdata.
func TestAll(t *testing.T) {
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "get current file path")

	harnessDir := filepath.Dir(filename)
	testdataDir := filepath.Join(harnessDir, "..", "..", "testdata")

	testCases := discoverTestCases(t, testdataDir)
	require.NotEmpty(t, testCases, "no test cases found")

	if testing.Verbose() {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	for _, tc := range testCases {
		t.Run(tc.Dir, func(t *testing.T) {
			t.Parallel()
			if tc.Description != "" {
				t.Logf("%s", tc.Description)
			}

			result := NewHarness(testdataDir).Run(t, tc)
			if !result.Success {
				t.Errorf("Test failed: %s", result.Message)
			}
		})
	}
}

func TestValidateResultsReportsMismatches(t *testing.T) {
	yes, no := true, false
	tc := &TestCase{
		Op: "is-prime",
		Expectations: []Expectation{
			{Input: 4, Prime: &yes},
			{Input: 7, Prime: &no},
			{Input: 11},
		},
		Stats: &ExpectedStats{Total: 3, Prime: 3},
	}

	h := NewHarness(t.TempDir())
	result := h.Run(t, tc)
	require.False(t, result.Success)
	require.Len(t, result.Details, 3)
	require.Contains(t, result.Message, "3 mismatches")
}

func discoverTestCases(t *testing.T, root string) []*TestCase {
	t.Helper()

	// Read all directories in testdata.
	entries, err := os.ReadDir(root)
	require.NoError(t, err)

	var testCases []*TestCase
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		// Skip slow cases when running in short mode.
		if strings.HasPrefix(entry.Name(), "slow-") && testing.Short() {
			continue
		}

		dir := filepath.Join(root, entry.Name())

		// Check if this directory has an expected.yaml.
		if _, err := os.Stat(filepath.Join(dir, "expected.yaml")); err == nil {
			testCases = append(testCases, LoadTestCase(t, dir, root))
		}
	}

	return testCases
}
