package result

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/AndreyAkinshin/verifyhelper/internal/errors"
)

func float(v float64) *float64 { return &v }

func TestRoundTrip(t *testing.T) {
	tokyo := time.FixedZone("", 9*60*60)
	x := &VerifyCommandResult{
		TotalSeconds: 12.75,
		Files: map[string]FileResult{
			"test/aplusb.test.cpp": {
				Newest: true,
				Verifications: []VerificationResult{{
					VerificationName: "g++",
					Status:           Success,
					Elapsed:          1.25,
					Slowest:          float(0.5),
					Heaviest:         float(12.5),
					Testcases: []TestcaseResult{
						{Name: "example_00", Status: AC, Elapsed: 0.5, Memory: float(12.5)},
						{Name: "example_01", Status: AC, Elapsed: 0.25},
					},
					LastExecutionTime: time.Date(2024, 3, 1, 21, 0, 0, 123456000, tokyo),
				}},
			},
			"test/wa.test.cpp": {
				Newest: false,
				Verifications: []VerificationResult{
					{Status: Failure, Elapsed: 3, LastExecutionTime: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
					{Status: Skipped, Elapsed: 0, LastExecutionTime: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
				},
			},
			"test/empty.test.cpp": {Newest: true},
		},
	}

	data, err := Marshal(x)
	require.NoError(t, err)

	got, err := Parse(data, "", nil)
	require.NoError(t, err)
	assert.True(t, x.Equal(got), "round trip mismatch:\n%s", data)
}

func TestMarshal_OmitsUnsetFields(t *testing.T) {
	r := &VerifyCommandResult{Files: map[string]FileResult{
		"a": {Newest: true, Verifications: []VerificationResult{{Status: Success, LastExecutionTime: base}}},
	}}

	data, err := Marshal(r)
	require.NoError(t, err)
	s := string(data)
	for _, field := range []string{"verification_name", "slowest", "heaviest", "testcases", "null"} {
		assert.NotContains(t, s, field)
	}
	assert.Contains(t, s, `"last_execution_time": "2024-03-01T12:00:00Z"`)
}

func TestMarshal_NilFiles(t *testing.T) {
	data, err := Marshal(&VerifyCommandResult{})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"files": {}`)
}

func TestParse_Defaults(t *testing.T) {
	data := `{"files": {"a.test.cpp": {"verifications": [
		{"status": "success", "elapsed": 1, "last_execution_time": "2024-03-01T12:00:00.5"}
	]}}}`

	got, err := Parse([]byte(data), "", nil)
	require.NoError(t, err)

	f := got.Files["a.test.cpp"]
	assert.True(t, f.Newest, "missing newest defaults to true")
	require.Len(t, f.Verifications, 1)
	want := time.Date(2024, 3, 1, 12, 0, 0, 500000000, time.UTC)
	assert.True(t, f.Verifications[0].LastExecutionTime.Equal(want))
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		`not json`,
		`{"files": {"a": {"verifications": [{"status": "passed", "elapsed": 0, "last_execution_time": "2024-03-01T12:00:00Z"}]}}}`,
		`{"files": {"a": {"verifications": [{"status": "success", "elapsed": 0, "last_execution_time": "yesterday"}]}}}`,
	}

	for _, data := range tests {
		_, err := Parse([]byte(data), "", nil)
		require.Error(t, err, data)
		assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
	}
}

func TestParse_NormalizesPaths(t *testing.T) {
	root := t.TempDir()
	abs := filepath.ToSlash(filepath.Join(root, "lib", "b.test.cpp"))

	data := `{"files": {
		"./test/a.test.cpp": {"newest": true, "verifications": []},
		"` + abs + `": {"newest": true, "verifications": []},
		"../outside.test.cpp": {"newest": true, "verifications": []},
		"/definitely/elsewhere/c.test.cpp": {"newest": true, "verifications": []}
	}}`

	core, logs := observer.New(zapcore.WarnLevel)
	got, err := Parse([]byte(data), root, zap.New(core))
	require.NoError(t, err)

	assert.Len(t, got.Files, 2)
	assert.Contains(t, got.Files, "test/a.test.cpp")
	assert.Contains(t, got.Files, "lib/b.test.cpp")
	assert.Equal(t, 2, logs.FilterMessage("dropping result entry outside of the repository").Len())
}

func TestParse_DuplicatePaths(t *testing.T) {
	entry := func(newest bool, elapsed float64) string {
		return fmt.Sprintf(`{"newest": %t, "verifications": [{"status": "success", "elapsed": %g, "last_execution_time": "2024-01-01T00:00:00Z"}]}`, newest, elapsed)
	}
	tests := []struct {
		name        string
		dotted      string
		plain       string
		wantElapsed float64
	}{
		{"newest kept over stale", entry(true, 1), entry(false, 2), 1},
		{"later key wins between stale", entry(false, 1), entry(false, 2), 2},
		{"later key wins between newest", entry(true, 1), entry(true, 2), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := `{"files": {"./a.cpp": ` + tt.dotted + `, "a.cpp": ` + tt.plain + `}}`
			core, logs := observer.New(zapcore.WarnLevel)
			got, err := Parse([]byte(data), "", zap.New(core))
			require.NoError(t, err)

			require.Len(t, got.Files, 1)
			assert.Equal(t, tt.wantElapsed, got.Files["a.cpp"].Verifications[0].Elapsed)
			assert.Equal(t, 1, logs.FilterMessage("duplicate result entries for the same file").Len())
		})
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		root, path string
		want       string
		ok         bool
	}{
		{"", "a/b", "a/b", true},
		{"", "./a//b/../c", "a/c", true},
		{"", "../a", "", false},
		{"", "/abs/a", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := NormalizePath(tt.root, tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarshal_Timezones(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("", -5*60*60))
	r := &VerifyCommandResult{Files: map[string]FileResult{
		"a": {Newest: true, Verifications: []VerificationResult{{Status: Success, LastExecutionTime: at}}},
	}}
	data, err := Marshal(r)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "2024-03-01T12:00:00-05:00"))
}
