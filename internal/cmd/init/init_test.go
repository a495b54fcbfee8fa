package init

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Choimoe/MaidataStatistic/internal/config"
)

func TestVerifyRoot_Success(t *testing.T) {
	err := verifyRoot(t.TempDir())
	assert.NoError(t, err)
}

func TestVerifyRoot_Missing(t *testing.T) {
	err := verifyRoot(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestVerifyRoot_NotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	err := verifyRoot(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"tilde alone", "~", home},
		{"tilde prefix", "~/charts", filepath.Join(home, "charts")},
		{"absolute untouched", "/srv/charts", "/srv/charts"},
		{"relative untouched", "charts", "charts"},
		{"tilde mid-path untouched", "/srv/~/charts", "/srv/~/charts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandPath(tt.path))
		})
	}
}

func TestRunInit_NoInput(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(t.TempDir(), "config.yml")

	err := runInit(root, true, false, configPath)
	require.NoError(t, err)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.LibraryRoot)
	assert.Empty(t, cfg.FileName)
	assert.Empty(t, cfg.OutputFormat)
}

func TestRunInit_NoInput_MissingRoot(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	err := runInit("", true, false, configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "library root is required")
}

func TestRunInit_NoInput_RootDoesNotExist(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	err := runInit(filepath.Join(t.TempDir(), "absent"), true, false, configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestRunInit_NoVerifySkipsRootCheck(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	root := filepath.Join(t.TempDir(), "not-yet-created")

	err := runInit(root, true, true, configPath)
	require.NoError(t, err)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.LibraryRoot)
}

func TestRunInit_NoInput_OverwritesExisting(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	old := config.Config{LibraryRoot: "/old/root"}
	require.NoError(t, old.Save(configPath))

	root := t.TempDir()
	err := runInit(root, true, false, configPath)
	require.NoError(t, err)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.LibraryRoot)
}

func TestConfigFilePermissions(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	err := runInit(t.TempDir(), true, false, configPath)
	require.NoError(t, err)

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "config file should have 0600 permissions")
}

func TestNewCmdInit_Flags(t *testing.T) {
	cmd := NewCmdInit()

	// Verify command structure
	assert.Equal(t, "init", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	// Verify flags exist
	rootFlag := cmd.Flags().Lookup("root")
	require.NotNil(t, rootFlag)
	assert.Equal(t, "", rootFlag.DefValue)

	noInputFlag := cmd.Flags().Lookup("no-input")
	require.NotNil(t, noInputFlag)
	assert.Equal(t, "false", noInputFlag.DefValue)

	noVerifyFlag := cmd.Flags().Lookup("no-verify")
	require.NotNil(t, noVerifyFlag)
	assert.Equal(t, "false", noVerifyFlag.DefValue)
}
