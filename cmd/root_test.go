package cmd

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/gantt/internal/chart"
	"github.com/sadopc/gantt/internal/config"
	"github.com/sadopc/gantt/internal/schedule"
	"github.com/sadopc/gantt/internal/store"
)

// resetFlags puts every package-level flag back to its default; cobra keeps
// values between Execute calls.
func resetFlags() {
	cfgPath, dbPath, verbose = "", "", false
	tuiFile, tuiView = "", ""
	renderOutput, renderView, renderTheme, renderScale, renderStrategy, renderExample = "", "", "", 0, "", false
	parseJSON, parseNormalize, parseExample = false, false, false
	exportFormat, exportOutput, exportExample = "csv", "", false
	bucketsView = ""
	appConfig = nil
}

// executeCmd runs the root command with an isolated config and database.
func executeCmd(t *testing.T, stdin string, args ...string) (stdout string, stderr string, err error) {
	t.Helper()
	resetFlags()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	bufOut := new(bytes.Buffer)
	bufErr := new(bytes.Buffer)
	rootCmd.SetOut(bufOut)
	rootCmd.SetErr(bufErr)
	rootCmd.SetIn(strings.NewReader(stdin))

	base := []string{
		"--config", filepath.Join(dir, "config.toml"),
		"--db", filepath.Join(dir, "gantt.db"),
	}
	rootCmd.SetArgs(append(args, base...))

	err = rootCmd.Execute()
	return bufOut.String(), bufErr.String(), err
}

func TestRootCmd(t *testing.T) {
	assert.Equal(t, "gantt", rootCmd.Use)
	for _, name := range []string{"config", "db", "verbose"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "--%s flag should be registered", name)
	}
	for _, name := range []string{"render", "parse", "export", "example", "buckets", "theme", "settings"} {
		c, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}
}

func TestHelp(t *testing.T) {
	out, _, err := executeCmd(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "gantt")
	assert.Contains(t, out, "render")
}

func TestExampleCmd(t *testing.T) {
	out, _, err := executeCmd(t, "", "example")
	require.NoError(t, err)
	assert.Equal(t, store.ExampleProgram+"\n", out)
}

func TestParseTable(t *testing.T) {
	out, _, err := executeCmd(t, "", "parse", "--example")
	require.NoError(t, err)
	for _, want := range []string{"Discovery", "Development", "2025-10-28", "Carol"} {
		assert.Contains(t, out, want)
	}
}

func TestParseJSON(t *testing.T) {
	out, _, err := executeCmd(t, "", "parse", "--example", "--json")
	require.NoError(t, err)

	var got struct {
		Count int `json:"count"`
		Tasks []struct {
			ID        int    `json:"id"`
			Name      string `json:"name"`
			End       string `json:"end"`
			DependsOn *int   `json:"depends_on"`
		} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, 5, got.Count)
	assert.Equal(t, "Development", got.Tasks[2].Name)
	assert.Equal(t, "2025-10-06", got.Tasks[2].End)
	require.NotNil(t, got.Tasks[2].DependsOn)
	assert.Equal(t, 2, *got.Tasks[2].DependsOn)
	assert.Nil(t, got.Tasks[0].DependsOn)
}

func TestParseNormalizeFromStdin(t *testing.T) {
	in := "Kickoff, 2025-03-03, 1w, Ann\n\nnot a task\nBuild, , 2d, , x"
	out, errOut, err := executeCmd(t, in, "parse", "--normalize", "-")
	require.NoError(t, err)
	assert.Equal(t, "Kickoff, 2025-03-03, 5d, Ann\nBuild, 2025-01-01, 2d\n", out)
	assert.Contains(t, errOut, "parse issue")
	assert.Contains(t, errOut, "dropped=true")
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.txt")
	require.NoError(t, os.WriteFile(path, []byte("Solo, 2025-05-05, 3d"), 0o644))

	out, _, err := executeCmd(t, "", "parse", "--normalize", path)
	require.NoError(t, err)
	assert.Equal(t, "Solo, 2025-05-05, 3d\n", out)
}

func TestParseMissingFile(t *testing.T) {
	_, _, err := executeCmd(t, "", "parse", filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestRenderExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	out, _, err := executeCmd(t, "", "render", "--example", "-o", path, "--scale", "1")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Greater(t, cfg.Width, 180)
	assert.Greater(t, cfg.Height, 5*36)
}

func TestRenderScaleIsCapped(t *testing.T) {
	dir := t.TempDir()
	one := filepath.Join(dir, "one.png")
	big := filepath.Join(dir, "big.png")

	_, _, err := executeCmd(t, "", "render", "--example", "-o", one, "--scale", "1", "--strategy", "gg")
	require.NoError(t, err)
	_, _, err = executeCmd(t, "", "render", "--example", "-o", big, "--scale", "3", "--strategy", "gg")
	require.NoError(t, err)

	w1, h1 := pngSize(t, one)
	w3, h3 := pngSize(t, big)
	assert.Equal(t, w1*2, w3)
	assert.Equal(t, h1*2, h3)
}

func pngSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestRenderHugeSpan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.png")
	in := "Forever, 2025-01-01, 9999999d\n"
	_, errOut, err := executeCmd(t, in, "render", "-", "-o", path, "--scale", "1", "--view", "month")
	require.NoError(t, err)
	assert.Contains(t, errOut, "duration exceeds")
	assert.Contains(t, errOut, "timeline truncated")

	w, _ := pngSize(t, path)
	assert.LessOrEqual(t, w, int(chart.MaxTimelineWidth)+400)
}

func TestRenderUnknownStrategy(t *testing.T) {
	_, _, err := executeCmd(t, "", "render", "--example", "--strategy", "webgl")
	assert.Error(t, err)
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.csv")
	out, _, err := executeCmd(t, "", "export", "--example", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 5 tasks")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "ID,Name,Owner,Start,End,Days,DependsOn", lines[0])
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	_, _, err := executeCmd(t, "", "export", "--example", "--format", "json", "-o", path)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestExportUnknownFormat(t *testing.T) {
	_, _, err := executeCmd(t, "", "export", "--example", "--format", "xml")
	assert.Error(t, err)
}

func TestBuckets(t *testing.T) {
	out, _, err := executeCmd(t, "", "buckets", "2025-09-03", "2025-09-20", "--view", "week")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "2025-09-01  2025-09-07  7d")
	assert.Contains(t, lines[2], "2025-09-15  2025-09-21")
}

func TestBucketsTruncatesLongRange(t *testing.T) {
	out, errOut, err := executeCmd(t, "", "buckets", "0001-01-01", "9999-12-31", "--view", "day")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), schedule.MaxBuckets)
	assert.Contains(t, errOut, "range truncated")
}

func TestBucketsReversedRange(t *testing.T) {
	_, _, err := executeCmd(t, "", "buckets", "2025-09-20", "2025-09-03")
	assert.Error(t, err)
}

func TestThemeCmd(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	db := filepath.Join(dir, "gantt.db")
	conf := filepath.Join(dir, "config.toml")

	run := func(args ...string) string {
		resetFlags()
		out := new(bytes.Buffer)
		rootCmd.SetOut(out)
		rootCmd.SetErr(new(bytes.Buffer))
		rootCmd.SetArgs(append(args, "--db", db, "--config", conf))
		require.NoError(t, rootCmd.Execute())
		return strings.TrimSpace(out.String())
	}

	assert.Equal(t, "light", run("theme"))
	assert.Equal(t, "dark", run("theme", "dark"))
	assert.Equal(t, "dark", run("theme"))
	assert.Equal(t, "light", run("theme", "toggle"))

	listed := run("settings")
	assert.Contains(t, listed, "theme")
	assert.Contains(t, listed, "light")
}

func TestSettingsCmdEmpty(t *testing.T) {
	out, _, err := executeCmd(t, "", "settings")
	require.NoError(t, err)
	assert.Equal(t, "No settings saved.\n", out)
}

func TestThemeCmdInvalid(t *testing.T) {
	_, _, err := executeCmd(t, "", "theme", "sepia")
	assert.ErrorIs(t, err, store.ErrUnknownTheme)
}

func TestResolveDBPath(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	appConfig = config.DefaultConfig()

	dbPath = "/tmp/flag.db"
	got, err := resolveDBPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/flag.db", got)

	dbPath = ""
	appConfig.Storage.DataDir = "/var/lib/gantt"
	got, err = resolveDBPath()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/gantt/gantt.db", got)

	appConfig.Storage.DataDir = ""
	want, err := store.DefaultDBPath()
	require.NoError(t, err)
	got, err = resolveDBPath()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveViewMode(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	appConfig = config.DefaultConfig()
	appConfig.View = "month"

	m, err := resolveViewMode("")
	require.NoError(t, err)
	assert.Equal(t, "month", m.String())

	m, err = resolveViewMode("Day")
	require.NoError(t, err)
	assert.Equal(t, "day", m.String())

	_, err = resolveViewMode("quarter")
	assert.Error(t, err)
}
