package stickerbot

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silenole/stickerbot/stickerbot/config"
)

const sampleConfig = `
[log]
level = "DEBUG"

[server]
port = 9090

[db]
host = "localhost"
database = "silenole"

[whatsapp]
token = "file-token"
phone_number_id = "106540352242922"
verify_token = "verify"
timeout = "5s"

[bot]
wake_word = "  @SileNole "

[[bot.commands]]
name = "open_pack"
keyword = "sobre"

[[bot.commands]]
name = "help"
keyword = "ayuda"

[economy]
cooldown = "12h"
token_ttl = "15m"

[economy.weights]
legendary = 5
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 5*time.Second, cfg.WhatsApp.Timeout.Duration)
	assert.Equal(t, config.DefaultGraphAPIVersion, cfg.WhatsApp.APIVersion)
	assert.Equal(t, "@silenole", cfg.Bot.WakeWord)
	assert.Equal(t, config.DefaultAlbumURL, cfg.Bot.AlbumURL)
	require.Len(t, cfg.Bot.Commands, 2)
	assert.Equal(t, "open_pack", cfg.Bot.Commands[0].Name)
	assert.Equal(t, 12*time.Hour, cfg.Economy.Cooldown.Duration)
	assert.Equal(t, 15*time.Minute, cfg.Economy.TokenTTL.Duration)
	assert.Equal(t, config.PackSize, cfg.Economy.PackSize)
	assert.Equal(t, config.InventoryModeUpsert, cfg.Economy.InventoryMode)
	assert.Equal(t, 5, cfg.Economy.Weights["legendary"])
	assert.Equal(t, config.DedupeWindow, cfg.Redis.DedupeTTL.Duration)
	assert.Equal(t, config.LinkPurgeSchedule, cfg.Maintenance.LinkPurgeSchedule)
	assert.NoError(t, cfg.Validate(true))
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "[economy]\ncooldown = \"a day\"\n"))
	assert.ErrorContains(t, err, "invalid duration")
}

func TestApplyEnv_OverridesSecrets(t *testing.T) {
	env := map[string]string{
		"WA_TOKEN":        "env-token",
		"WA_VERIFY_TOKEN": "env-verify",
		"DB_PASSWORD":     "hunter2",
		"REDIS_URL":       "redis://cache:6379/0",
		"NATS_URL":        "",
	}
	cfg := &Config{WhatsApp: WhatsAppConfig{Token: "file-token"}, NATS: NATSConfig{URL: "nats://file:4222"}}
	cfg.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.Equal(t, "env-token", cfg.WhatsApp.Token)
	assert.Equal(t, "env-verify", cfg.WhatsApp.VerifyToken)
	assert.Equal(t, "hunter2", cfg.DB.Password)
	assert.Equal(t, "redis://cache:6379/0", cfg.Redis.URL)
	assert.Equal(t, "nats://file:4222", cfg.NATS.URL)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	err := cfg.Validate(true)
	require.Error(t, err)
	for _, want := range []string{"whatsapp.token", "whatsapp.phone_number_id", "whatsapp.verify_token", "db.host"} {
		assert.ErrorContains(t, err, want)
	}
	assert.NotContains(t, cfg.Validate(false).Error(), "db.host")

	cfg.WhatsApp = WhatsAppConfig{Token: "t", PhoneNumberID: "p", VerifyToken: "v"}
	assert.NoError(t, cfg.Validate(false))

	cfg.Economy.InventoryMode = "batch"
	cfg.Bot.Commands = append(cfg.Bot.Commands, CommandConfig{Name: "trade", Keyword: " "})
	err = cfg.Validate(false)
	assert.ErrorContains(t, err, `inventory_mode "batch"`)
	assert.ErrorContains(t, err, `unknown command "trade"`)
	assert.ErrorContains(t, err, "has no keyword")
}
