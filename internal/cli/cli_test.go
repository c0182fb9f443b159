package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func decode(t *testing.T, out string, data any) Response {
	t.Helper()
	var raw struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
		Error  string          `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &raw))
	if data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return Response{Status: raw.Status, Error: raw.Error}
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "cactl", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"rules", "run", "scenario", "compare"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "rules", "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRulesJSON(t *testing.T) {
	out, _, err := execute(t, "rules", "--format", "json")
	require.NoError(t, err)

	var infos []ruleInfo
	resp := decode(t, out, &infos)
	assert.Equal(t, "ok", resp.Status)
	require.GreaterOrEqual(t, len(infos), 9)
	assert.Equal(t, "life", infos[0].ID)
	assert.Equal(t, "Game of Life", infos[0].Name)

	var custom []string
	for _, info := range infos {
		if info.Custom {
			custom = append(custom, info.ID)
		}
	}
	assert.Contains(t, custom, "custom:briansbrain3")
}

func TestRunWithPattern(t *testing.T) {
	dir := t.TempDir()
	pattern := filepath.Join(dir, "blinker.cells")
	require.NoError(t, os.WriteFile(pattern, []byte("!blinker\nOOO\n"), 0o644))

	out, _, err := execute(t, "run", "--width", "5", "--height", "5", "--steps", "1", "--pattern", pattern)
	require.NoError(t, err)
	assert.Equal(t, ".....\n..O..\n..O..\n..O..\n.....\n! rule=life generations=1 population=3\n", out)
}

func TestRunJSONWithSeedIsDeterministic(t *testing.T) {
	args := []string{"run", "--format", "json", "--width", "16", "--height", "12", "--steps", "5", "--seed", "9", "--rule", "daynight"}
	first, _, err := execute(t, args...)
	require.NoError(t, err)
	second, _, err := execute(t, args...)
	require.NoError(t, err)

	var a, b runSummary
	decode(t, first, &a)
	decode(t, second, &b)
	assert.Equal(t, a.Grid, b.Grid)
	assert.Equal(t, a.Population, b.Population)
	assert.NotEqual(t, a.Session, b.Session, "each run gets its own session")
	assert.Equal(t, "daynight", a.Rule)
	assert.Equal(t, uint64(5), a.Generations)
	assert.Len(t, a.Grid, 12)
}

func TestRunConfigFileWithFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ca.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 6\nheight: 4\nrule: seeded\nfill: 0\n"), 0o644))

	out, _, err := execute(t, "run", "--format", "json", "--config", path, "--rule", "sierpinski", "--steps", "1")
	require.NoError(t, err)

	var summary runSummary
	decode(t, out, &summary)
	assert.Equal(t, "sierpinski", summary.Rule)
	assert.Equal(t, 6, summary.Config.Width)
	assert.Equal(t, []string{"OOOOOO", "O.O.O.", "OO..OO", "O...O."}, summary.Grid)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	_, _, err := execute(t, "run", "--width", "0")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, _, err = execute(t, "run", "--rule", "wireworld")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestScenarioCommand(t *testing.T) {
	glider := filepath.Join("..", "scenario", "testdata", "glider.yaml")
	out, _, err := execute(t, "scenario", glider)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "PASS glider"), out)
}

func TestScenarioCommandFailure(t *testing.T) {
	failing := filepath.Join("..", "scenario", "testdata", "diffusion_fails.yaml")
	out, stderr, err := execute(t, "scenario", failing)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "FAIL diffusion-isolated")
	assert.Contains(t, stderr, "1 of 1 scenarios failed")
	assert.False(t, ShouldPrint(err), "failure already written to stderr")
}

func TestScenarioCommandMissingFile(t *testing.T) {
	_, _, err := execute(t, "scenario", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCompareJSON(t *testing.T) {
	args := []string{"compare", "--format", "json", "--width", "20", "--height", "20", "--steps", "10", "--seed", "3", "--fill", "0.3"}
	out, _, err := execute(t, args...)
	require.NoError(t, err)

	var report compareReport
	resp := decode(t, out, &report)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, int64(3), report.Seed)
	require.Len(t, report.Rows, 8)

	initial := report.Rows[0].Initial
	for _, row := range report.Rows {
		assert.Equal(t, initial, row.Initial, "every rule starts from the same fill")
		assert.Equal(t, 10, row.Generations)
		assert.GreaterOrEqual(t, row.Peak, row.Final)
	}
	assert.Equal(t, "sierpinski", report.Rows[7].Rule)

	again, _, err := execute(t, args...)
	require.NoError(t, err)
	var second compareReport
	decode(t, again, &second)
	assert.Equal(t, report.Rows, second.Rows)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "bad", assert.AnError)))
	assert.ErrorIs(t, WrapExitError(ExitFailure, "x", assert.AnError), assert.AnError)
	assert.True(t, ShouldPrint(assert.AnError))
	assert.False(t, ShouldPrint(nil))
}
