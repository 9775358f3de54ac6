package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/binrec/pkg/api"
	"github.com/ssargent/binrec/pkg/config"
	"github.com/ssargent/binrec/pkg/di"
)

// mockServerStarter records the arguments StartServer was called with
// instead of binding a real listener.
type mockServerStarter struct {
	registry api.Registry
	config   api.ServerConfig
	started  bool
}

func (m *mockServerStarter) StartServer(registry api.Registry, config api.ServerConfig) error {
	m.registry = registry
	m.config = config
	m.started = true
	return nil
}

type mockServerFactory struct {
	starter *mockServerStarter
}

func (m *mockServerFactory) CreateServerStarter() api.ServerStarter {
	return m.starter
}

func writeTestSchema(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSchemaDoc), 0644))
	return path
}

// runServe executes "binrec serve" with a mock server factory wired
// into the dependency container. Flag values persist across Execute
// calls, so every test passes its full flag set.
func runServe(t *testing.T, args ...string) (*mockServerStarter, string) {
	t.Helper()

	starter := &mockServerStarter{}
	container := di.NewContainer()
	container.SetServerFactory(&mockServerFactory{starter: starter})
	SetContainer(container)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"serve"}, args...))

	require.NoError(t, rootCmd.Execute())
	return starter, out.String()
}

func TestServeCommand_Flags(t *testing.T) {
	schemaPath := writeTestSchema(t, t.TempDir())

	starter, out := runServe(t,
		"--schema", schemaPath,
		"--port", "9100",
		"--bind", "0.0.0.0",
		"--api-key", "sekret",
	)

	assert.True(t, starter.started)
	assert.Equal(t, 9100, starter.config.Port)
	assert.Equal(t, "0.0.0.0", starter.config.Bind)
	assert.Equal(t, "sekret", starter.config.APIKey)

	require.NotNil(t, starter.registry)
	assert.Equal(t, []string{"DirEntry"}, starter.registry.Names())

	assert.Contains(t, out, "Starting binrec server on 0.0.0.0:9100")
	assert.Contains(t, out, "(1 types)")
}

func TestServeCommand_BootstrapConfig(t *testing.T) {
	tmpDir := t.TempDir()
	schemaPath := writeTestSchema(t, tmpDir)
	configPath := filepath.Join(tmpDir, "config.yaml")

	starter, out := runServe(t,
		"--schema", schemaPath,
		"--config", configPath,
		"--port", "8080",
		"--bind", "127.0.0.1",
		"--api-key", "",
	)

	assert.True(t, starter.started)
	assert.Contains(t, out, "Bootstrapping binrec")
	assert.True(t, config.ConfigExists(configPath))

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, schemaPath, cfg.SchemaFile)

	// The generated key reaches the server unchanged
	assert.Equal(t, cfg.Security.APIKey, starter.config.APIKey)
	assert.Len(t, starter.config.APIKey, 64)
	assert.NotEqual(t, "auto", starter.config.APIKey)
}

func TestServeCommand_ExistingConfig(t *testing.T) {
	tmpDir := t.TempDir()
	schemaPath := writeTestSchema(t, tmpDir)
	configPath := filepath.Join(tmpDir, "config.yaml")

	existing := config.DefaultConfig()
	existing.SchemaFile = schemaPath
	existing.Port = 9300
	existing.Security.APIKey = "from-config"
	require.NoError(t, config.SaveConfig(existing, configPath))

	starter, out := runServe(t,
		"--schema", schemaPath,
		"--config", configPath,
		"--port", "8080",
		"--bind", "127.0.0.1",
		"--api-key", "",
	)

	assert.True(t, starter.started)
	assert.Contains(t, out, "Loaded existing configuration")

	// Defaulted flags do not override the stored values
	assert.Equal(t, 9300, starter.config.Port)
	assert.Equal(t, "from-config", starter.config.APIKey)
}
