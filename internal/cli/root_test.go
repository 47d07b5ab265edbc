package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	aw "github.com/deanishe/awgo"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/c2nes/alfred-time/internal/config"
	"github.com/c2nes/alfred-time/internal/log"
)

type jsonItems struct {
	Items []struct {
		UID      int    `json:"uid"`
		Title    string `json:"title"`
		Subtitle string `json:"subtitle"`
		Arg      any    `json:"arg"`
	} `json:"items"`
}

// isolate points the default config path at an empty directory.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
}

func runCLI(t *testing.T, env aw.MapEnv, terminal bool, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr, env, terminal)
	return stdout.String(), stderr.String(), err
}

func TestRunJSON(t *testing.T) {
	isolate(t)
	out, _, err := runCLI(t, aw.MapEnv{}, false, "-o", "json", "-z", "UTC", "1021846896")
	require.NoError(t, err)

	var doc jsonItems
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Items, 6)
	assert.Equal(t, "1021846896000", doc.Items[0].Title)
	assert.Equal(t, "UTC Timestamp", doc.Items[0].Subtitle)
	assert.Equal(t, "2002-05-19 22:21:36", doc.Items[1].Title)
	assert.Equal(t, "2002-05-19T22:21:36+0000", doc.Items[5].Title)
}

func TestRunNegativeTimestamp(t *testing.T) {
	isolate(t)
	out, _, err := runCLI(t, aw.MapEnv{}, false, "--output=json", "--timezone=UTC", "-1041335973000")
	require.NoError(t, err)

	var doc jsonItems
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Items, 6)
	assert.Equal(t, "-1041335973000", doc.Items[0].Title)
	assert.Equal(t, "Fri, 01 Jan 1937 12:00:27", doc.Items[3].Title)
}

func TestRunJoinsArgs(t *testing.T) {
	isolate(t)
	out, _, err := runCLI(t, aw.MapEnv{}, false, "-o", "json", "-z", "UTC", "2002-05-19", "15:21:36")
	require.NoError(t, err)

	var doc jsonItems
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Items, 6)
	assert.Equal(t, "2002-05-19 15:21:36", doc.Items[1].Title)
}

func TestRunUnresolvedWritesNothing(t *testing.T) {
	isolate(t)
	for _, args := range [][]string{nil, {""}, {"not", "a", "date"}} {
		out, _, err := runCLI(t, aw.MapEnv{}, false, args...)
		require.NoError(t, err)
		assert.Empty(t, out)
	}
}

func TestRunWorkflowVariables(t *testing.T) {
	isolate(t)
	env := aw.MapEnv{
		config.VarOutput:   "yaml",
		config.VarTimezone: "Asia/Tokyo",
	}
	out, _, err := runCLI(t, env, false, "--timezone", "UTC", "0")
	require.NoError(t, err)

	var doc struct {
		Items []struct {
			Title    string `yaml:"title"`
			Subtitle string `yaml:"subtitle"`
		} `yaml:"items"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Items, 6)
	assert.Equal(t, "UTC Timestamp", doc.Items[0].Subtitle)
	assert.Equal(t, "1970-01-01 00:00:00", doc.Items[1].Title)
}

func TestRunAlfredDefault(t *testing.T) {
	isolate(t)
	env := aw.MapEnv{config.VarBundleID: "net.c2nes.time"}
	out, _, err := runCLI(t, env, false, "-z", "UTC", "now")
	require.NoError(t, err)

	var doc struct {
		Items []struct {
			UID string `json:"uid"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Items, 6)
	assert.Equal(t, "net.c2nes.time-0", doc.Items[0].UID)
}

func TestRunTerminalText(t *testing.T) {
	isolate(t)
	t.Setenv("CLICOLOR_FORCE", "0")
	out, _, err := runCLI(t, aw.MapEnv{}, true, "-z", "UTC", "0")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "0  UTC Timestamp", lines[0])
}

func TestRunConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("timezone = \"UTC\"\noutput = \"json\"\n"), 0o644))

	out, _, err := runCLI(t, aw.MapEnv{}, false, "--config", path, "86400")
	require.NoError(t, err)

	var doc jsonItems
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Items, 6)
	assert.Equal(t, "1970-01-02 00:00:00", doc.Items[1].Title)
}

func TestRunErrors(t *testing.T) {
	isolate(t)

	_, stderr, err := runCLI(t, aw.MapEnv{}, false, "-o", "xml", "now")
	assert.Error(t, err)
	assert.Contains(t, stderr, "[ERROR] command failed err=unknown output \"xml\"")

	_, _, err = runCLI(t, aw.MapEnv{}, false, "-z", "Mars/Olympus_Mons", "now")
	assert.Error(t, err)

	_, _, err = runCLI(t, aw.MapEnv{}, false, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "now")
	assert.Error(t, err)
}

func TestApplyFlagsOnlyChanged(t *testing.T) {
	opts := &options{}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringVarP(&opts.timezone, flagTimezone, "z", "", "")
	fs.StringVarP(&opts.output, flagOutput, "o", "", "")
	fs.BoolVar(&opts.dayFirst, flagDayFirst, false, "")
	fs.BoolVar(&opts.debug, flagDebug, false, "")
	require.NoError(t, fs.Parse([]string{"-o", "text"}))

	cfg := &config.Config{Timezone: "Europe/Paris", Output: "alfred", DayFirst: true}
	applyFlags(fs, opts, cfg)
	assert.Equal(t, &config.Config{Timezone: "Europe/Paris", Output: "text", DayFirst: true}, cfg)

	require.NoError(t, fs.Parse([]string{"--day-first=false"}))
	applyFlags(fs, opts, cfg)
	assert.False(t, cfg.DayFirst)
}

func TestQueryFromArgs(t *testing.T) {
	assert.Nil(t, queryFromArgs(nil))
	q := queryFromArgs([]string{"May", "19", "2002"})
	require.NotNil(t, q)
	assert.Equal(t, "May 19 2002", *q)
}

func TestProtectNegative(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{[]string{"-z", "UTC", "now"}, []string{"-z", "UTC", "now"}},
		{[]string{"-5"}, []string{"--", "-5"}},
		{[]string{"-o", "json", "-.5", "x"}, []string{"-o", "json", "--", "-.5", "x"}},
		{[]string{"--", "-5"}, []string{"--", "-5"}},
		{[]string{"-"}, []string{"-"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, protectNegative(tt.in))
	}
}
