package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"OPENAI_API_KEY", "OPENAI_BASE_URL", "LARK_APP_ID", "LARK_APP_SECRET", "LARK_REVIEWER_OPEN_ID", "LISTINGS_DB_PATH", "LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "data/listings.db", cfg.Database.Path)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.True(t, cfg.Compliance.AIValidation)
	assert.False(t, cfg.AIEnabled())
	assert.False(t, cfg.NotificationsEnabled())
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: 9090
  read_timeout: 5s
database:
  path: /tmp/listings-test.db
openai:
  model: gpt-4o
lark:
  reviewer_open_id: ou_file
logger:
  level: debug
  format: console
compliance:
  notifications: true
`)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LARK_APP_ID", "cli_app")
	t.Setenv("LARK_APP_SECRET", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "/tmp/listings-test.db", cfg.Database.Path)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.True(t, cfg.AIEnabled())
	assert.True(t, cfg.NotificationsEnabled())
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_DisabledAI(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	path := writeConfig(t, "compliance:\n  ai_validation: false\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.AIEnabled())
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OPENAI_API_KEY=sk-from-file\n"), 0644))

	require.NoError(t, loadEnvFile(path))
	t.Cleanup(func() { _ = os.Unsetenv("OPENAI_API_KEY") })
	assert.Equal(t, "sk-from-file", os.Getenv("OPENAI_API_KEY"))

	assert.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), "absent.env")))
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Path: "data/listings.db"},
			Logger:   LoggerConfig{Format: "json"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "server.port"},
		{name: "database path", mutate: func(c *Config) { c.Database.Path = "" }, wantErr: "database.path"},
		{name: "logger format", mutate: func(c *Config) { c.Logger.Format = "xml" }, wantErr: "logger.format"},
		{name: "half lark", mutate: func(c *Config) { c.Lark.AppID = "cli_app" }, wantErr: "set together"},
		{name: "lark without reviewer", mutate: func(c *Config) {
			c.Lark.AppID = "cli_app"
			c.Lark.AppSecret = "secret"
		}, wantErr: "reviewer_open_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestToContainerConfig(t *testing.T) {
	cfg := &Config{
		Server:     ServerConfig{Host: "127.0.0.1", Port: 9000},
		Database:   DatabaseConfig{Path: "data/x.db", MigrationsDir: "migrations"},
		OpenAI:     OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o", PromptsPath: "configs/prompts.yaml"},
		Lark:       LarkConfig{AppID: "cli_app", AppSecret: "secret"},
		Logger:     LoggerConfig{Format: "json"},
		Compliance: ComplianceConfig{AIValidation: true, Notifications: true},
	}

	cc := cfg.ToContainerConfig()

	assert.Equal(t, "data/x.db", cc.Database.Path)
	assert.Equal(t, "migrations", cc.Database.MigrationsDir)
	assert.True(t, cc.OpenAI.Enabled)
	assert.Equal(t, "configs/prompts.yaml", cc.OpenAI.PromptsPath)
	// no reviewer configured
	assert.False(t, cc.Lark.Enabled)
	assert.Equal(t, 9000, cc.Server.Port)
}
