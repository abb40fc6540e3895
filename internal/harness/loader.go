package harness

import (
	"os"
	"path/filepath"
	"testing"

	yaml "gopkg.in/yaml.v3"

	"github.com/stretchr/testify/require"

	"github.com/dbtrnl/primes/pkg/input"
)

// LoadTestCase loads a test case from a directory with a specified testdata root.
func LoadTestCase(t *testing.T, dir, root string) *TestCase {
	t.Helper()
	yamlPath := filepath.Join(dir, "expected.yaml")

	tc := &TestCase{}
	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	err = yaml.Unmarshal(data, tc)
	require.NoError(t, err)

	// Use relative path from testdata root if provided.
	if root != "" {
		relPath, err := filepath.Rel(root, dir)
		if err != nil {
			tc.Dir = filepath.Base(dir)
		} else {
			tc.Dir = relPath
		}
		return tc
	}

	tc.Dir = filepath.Base(dir)
	return tc
}

// LoadInputs returns the numbers a test case evaluates: the contents of its
// input file when one is named, otherwise the inputs of its expectations.
func LoadInputs(t *testing.T, root string, tc *TestCase) []int64 {
	t.Helper()

	if tc.InputFile == "" {
		inputs := make([]int64, 0, len(tc.Expectations))
		for _, exp := range tc.Expectations {
			inputs = append(inputs, exp.Input)
		}
		return inputs
	}

	f, err := os.Open(filepath.Join(root, tc.Dir, tc.InputFile))
	require.NoError(t, err)
	defer f.Close()

	inputs, err := input.Parse(f)
	require.NoError(t, err)
	return inputs
}
