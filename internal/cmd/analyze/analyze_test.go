package analyze

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Choimoe/MaidataStatistic/api"
	"github.com/Choimoe/MaidataStatistic/internal/config"
	"github.com/Choimoe/MaidataStatistic/pkg/maidata"
)

const matchingSong = `&title=Alternating Song
&wholebpm=190
&lv_5=13+
&des_5=charter
&inote_5=
(190){8}1,8,1,8,
E
`

const plainSong = `&title=Plain Song
&wholebpm=120
&lv_3=9
&inote_3=
3,4,5,6,
E
`

func writeSong(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// missingConfig returns a config path that does not exist, keeping
// tests independent of the developer's real configuration.
func missingConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.yml")
}

// clearMaistatEnv keeps ambient MAISTAT_* overrides from leaking into
// config-sensitive tests.
func clearMaistatEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{"MAISTAT_LIBRARY_ROOT", "MAISTAT_FILE_NAME", "MAISTAT_OUTPUT_FORMAT"} {
		t.Setenv(v, "")
	}
}

func TestRunAnalyze_Library(t *testing.T) {
	clearMaistatEnv(t)
	root := t.TempDir()
	writeSong(t, root, "SongA/maidata.txt", matchingSong)
	writeSong(t, root, "SongB/maidata.txt", plainSong)

	opts := &analyzeOptions{
		path:       root,
		pattern:    "1,8,1,8",
		configPath: missingConfig(t),
		noColor:    true,
	}

	err := runAnalyze(opts, nil)
	require.NoError(t, err)
}

func TestRunAnalyze_SingleFile(t *testing.T) {
	clearMaistatEnv(t)
	root := t.TempDir()
	path := writeSong(t, root, "SongA/maidata.txt", matchingSong)

	opts := &analyzeOptions{
		path:       path,
		pattern:    "1,8",
		configPath: missingConfig(t),
		noColor:    true,
	}

	err := runAnalyze(opts, nil)
	require.NoError(t, err)
}

func TestRunAnalyze_JSONOutput(t *testing.T) {
	clearMaistatEnv(t)
	root := t.TempDir()
	writeSong(t, root, "SongA/maidata.txt", matchingSong)

	opts := &analyzeOptions{
		path:       root,
		pattern:    "1,8,1,8",
		configPath: missingConfig(t),
		output:     "json",
		noColor:    true,
	}

	err := runAnalyze(opts, nil)
	require.NoError(t, err)
}

func TestRunAnalyze_NoPattern(t *testing.T) {
	clearMaistatEnv(t)
	opts := &analyzeOptions{
		path:       t.TempDir(),
		configPath: missingConfig(t),
		noColor:    true,
	}

	err := runAnalyze(opts, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analyze requires a pattern")
}

func TestRunAnalyze_DefaultPatternFromConfig(t *testing.T) {
	clearMaistatEnv(t)
	root := t.TempDir()
	writeSong(t, root, "SongA/maidata.txt", matchingSong)

	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	cfg := config.Config{
		LibraryRoot:    root,
		DefaultPattern: []string{"1", "8", "1", "8"},
	}
	require.NoError(t, cfg.Save(cfgPath))

	opts := &analyzeOptions{
		configPath: cfgPath,
		noColor:    true,
	}

	err := runAnalyze(opts, nil)
	require.NoError(t, err)
}

func TestRunAnalyze_NoPathNoConfig(t *testing.T) {
	clearMaistatEnv(t)
	opts := &analyzeOptions{
		pattern:    "1,8",
		configPath: missingConfig(t),
		noColor:    true,
	}

	err := runAnalyze(opts, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no path given")
}

func TestRunAnalyze_MissingPath(t *testing.T) {
	opts := &analyzeOptions{
		path:       filepath.Join(t.TempDir(), "absent"),
		pattern:    "1,8",
		configPath: missingConfig(t),
		noColor:    true,
	}

	err := runAnalyze(opts, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to inspect")
}

func TestRunAnalyze_InvalidPattern(t *testing.T) {
	opts := &analyzeOptions{
		path:       t.TempDir(),
		pattern:    "1,,8",
		configPath: missingConfig(t),
		noColor:    true,
	}

	err := runAnalyze(opts, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty entry")
}

func TestRunAnalyze_InvalidOutputFormat(t *testing.T) {
	opts := &analyzeOptions{
		pattern: "1,8",
		output:  "invalid",
		noColor: true,
	}

	err := runAnalyze(opts, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestRunAnalyze_NegativeMinBPM(t *testing.T) {
	opts := &analyzeOptions{
		pattern: "1,8",
		minBPM:  -10,
		noColor: true,
	}

	err := runAnalyze(opts, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --min-bpm")
}

func TestRunAnalyze_ServerMode(t *testing.T) {
	var captured api.SearchRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`[{"path": "/lib/SongA/maidata.txt", "title": "Alternating Song", "charts": [5]}]`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL)
	opts := &analyzeOptions{
		pattern:    "1,8",
		configPath: missingConfig(t),
		noColor:    true,
	}

	err := runAnalyze(opts, client)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "8"}, captured.Pattern)
}

func TestRunAnalyze_ServerModeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "scan failed"}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL)
	opts := &analyzeOptions{
		pattern:    "1,8",
		configPath: missingConfig(t),
		noColor:    true,
	}

	err := runAnalyze(opts, client)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}

func TestRunAnalyze_ServerRejectsLocalFlags(t *testing.T) {
	opts := &analyzeOptions{
		pattern: "1,8",
		server:  "http://localhost:8080",
		report:  "out.md",
		noColor: true,
	}

	err := runAnalyze(opts, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--server")
}

func TestRunAnalyze_MarkdownReport(t *testing.T) {
	clearMaistatEnv(t)
	root := t.TempDir()
	writeSong(t, root, "SongA/maidata.txt", matchingSong)
	writeSong(t, root, "SongB/maidata.txt", plainSong)

	reportPath := filepath.Join(t.TempDir(), "jacks.md")
	opts := &analyzeOptions{
		path:       root,
		pattern:    "1,8,1,8",
		report:     reportPath,
		configPath: missingConfig(t),
		noColor:    true,
	}

	require.NoError(t, runAnalyze(opts, nil))

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Chart Library Report")
	assert.Contains(t, string(data), "Matched 1 of 2 chart files.")
	assert.Contains(t, string(data), "Alternating Song")
	assert.NotContains(t, string(data), "Plain Song")
}

func TestRunAnalyze_HTMLReport(t *testing.T) {
	clearMaistatEnv(t)
	root := t.TempDir()
	writeSong(t, root, "SongA/maidata.txt", matchingSong)

	reportPath := filepath.Join(t.TempDir(), "jacks.html")
	opts := &analyzeOptions{
		path:       root,
		pattern:    "1,8,1,8",
		report:     reportPath,
		configPath: missingConfig(t),
		noColor:    true,
	}

	require.NoError(t, runAnalyze(opts, nil))

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<h1>Chart Library Report</h1>")
	assert.Contains(t, string(data), "<h2>Alternating Song</h2>")
}

func TestParsePattern(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{"empty", "", nil, false},
		{"single", "1", []string{"1"}, false},
		{"sequence", "1,8,1,8", []string{"1", "8", "1", "8"}, false},
		{"spaces trimmed", " 1 , 8 ", []string{"1", "8"}, false},
		{"touch zones", "A1,E2", []string{"A1", "E2"}, false},
		{"empty entry", "1,,8", nil, true},
		{"trailing comma", "1,8,", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePattern(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilteredMatcher(t *testing.T) {
	accept := func(_ string, _ *maidata.File) (map[string]string, bool) {
		return map[string]string{"charts": "5"}, true
	}

	song := &maidata.File{
		Metadata: map[string]string{"wholebpm": "190"},
		Charts:   []maidata.Chart{{Number: 5, Level: "13+"}},
	}

	tests := []struct {
		name    string
		level   string
		minBPM  float64
		matched bool
	}{
		{"no filters", "", 0, true},
		{"level matches", "13+", 0, true},
		{"level differs", "12", 0, false},
		{"bpm above threshold", "", 180, true},
		{"bpm below threshold", "", 200, false},
		{"both match", "13+", 180, true},
		{"level matches but bpm too low", "13+", 200, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := filteredMatcher(accept, tt.level, tt.minBPM)
			_, ok := m("path", song)
			assert.Equal(t, tt.matched, ok)
		})
	}
}

func TestFilteredMatcher_MissingBPM(t *testing.T) {
	accept := func(_ string, _ *maidata.File) (map[string]string, bool) {
		return nil, true
	}
	song := &maidata.File{Metadata: map[string]string{}}

	m := filteredMatcher(accept, "", 100)
	_, ok := m("path", song)
	assert.False(t, ok, "missing wholebpm should fail a BPM filter")
}
