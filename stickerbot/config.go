package stickerbot

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/silenole/stickerbot/stickerbot/config"
)

// LoadConfig reads the TOML file at path, applies secrets from the environment
// (and an optional .env next to the process) and fills defaults.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", slog.String("type", "sys"), slog.Any("error", err))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyEnv(os.LookupEnv)
	cfg.applyDefaults()
	return &cfg, nil
}

type Config struct {
	Log         LogConfig         `toml:"log"`
	Server      ServerConfig      `toml:"server"`
	DB          DBConfig          `toml:"db"`
	WhatsApp    WhatsAppConfig    `toml:"whatsapp"`
	Bot         BotConfig         `toml:"bot"`
	Economy     EconomyConfig     `toml:"economy"`
	Redis       RedisConfig       `toml:"redis"`
	NATS        NATSConfig        `toml:"nats"`
	Maintenance MaintenanceConfig `toml:"maintenance"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	AddSource bool       `toml:"add_source"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

type WhatsAppConfig struct {
	Token         string   `toml:"token"`
	PhoneNumberID string   `toml:"phone_number_id"`
	VerifyToken   string   `toml:"verify_token"`
	BaseURL       string   `toml:"base_url"`
	APIVersion    string   `toml:"api_version"`
	Timeout       Duration `toml:"timeout"`
}

type BotConfig struct {
	WakeWord string          `toml:"wake_word"`
	AlbumURL string          `toml:"album_url"`
	Commands []CommandConfig `toml:"commands"`
}

// CommandConfig binds a command name (help, open_pack, view_album) to the
// keyword users type after the wake word. Order matters: first match wins.
type CommandConfig struct {
	Name    string `toml:"name"`
	Keyword string `toml:"keyword"`
}

type EconomyConfig struct {
	PackSize      int            `toml:"pack_size"`
	Cooldown      Duration       `toml:"cooldown"`
	TokenTTL      Duration       `toml:"token_ttl"`
	InventoryMode string         `toml:"inventory_mode"`
	Weights       map[string]int `toml:"weights"`
}

type RedisConfig struct {
	URL       string   `toml:"url"`
	DedupeTTL Duration `toml:"dedupe_ttl"`
}

type NATSConfig struct {
	URL string `toml:"url"`
}

// MaintenanceConfig schedules the purge of expired album links.
type MaintenanceConfig struct {
	LinkPurgeSchedule string   `toml:"link_purge_schedule"`
	LinkRetention     Duration `toml:"link_retention"`
}

// Duration decodes TOML strings such as "24h" or "10m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("WA_TOKEN"); ok && v != "" {
		c.WhatsApp.Token = v
	}
	if v, ok := lookup("WA_VERIFY_TOKEN"); ok && v != "" {
		c.WhatsApp.VerifyToken = v
	}
	if v, ok := lookup("WA_PHONE_NUMBER_ID"); ok && v != "" {
		c.WhatsApp.PhoneNumberID = v
	}
	if v, ok := lookup("DB_PASSWORD"); ok && v != "" {
		c.DB.Password = v
	}
	if v, ok := lookup("REDIS_URL"); ok && v != "" {
		c.Redis.URL = v
	}
	if v, ok := lookup("NATS_URL"); ok && v != "" {
		c.NATS.URL = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.DB.Port == 0 {
		c.DB.Port = 5432
	}
	if c.WhatsApp.BaseURL == "" {
		c.WhatsApp.BaseURL = config.DefaultGraphBaseURL
	}
	if c.WhatsApp.APIVersion == "" {
		c.WhatsApp.APIVersion = config.DefaultGraphAPIVersion
	}
	if c.WhatsApp.Timeout.Duration == 0 {
		c.WhatsApp.Timeout.Duration = config.NotificationTimeout
	}
	if c.Bot.WakeWord == "" {
		c.Bot.WakeWord = config.DefaultWakeWord
	}
	c.Bot.WakeWord = strings.ToLower(strings.TrimSpace(c.Bot.WakeWord))
	if c.Bot.AlbumURL == "" {
		c.Bot.AlbumURL = config.DefaultAlbumURL
	}
	if len(c.Bot.Commands) == 0 {
		c.Bot.Commands = DefaultCommands()
	}
	if c.Economy.PackSize == 0 {
		c.Economy.PackSize = config.PackSize
	}
	if c.Economy.Cooldown.Duration == 0 {
		c.Economy.Cooldown.Duration = config.PackCooldown
	}
	if c.Economy.TokenTTL.Duration == 0 {
		c.Economy.TokenTTL.Duration = config.AccessTokenTTL
	}
	if c.Economy.InventoryMode == "" {
		c.Economy.InventoryMode = config.InventoryModeUpsert
	}
	if c.Redis.DedupeTTL.Duration == 0 {
		c.Redis.DedupeTTL.Duration = config.DedupeWindow
	}
	if c.Maintenance.LinkPurgeSchedule == "" {
		c.Maintenance.LinkPurgeSchedule = config.LinkPurgeSchedule
	}
	if c.Maintenance.LinkRetention.Duration == 0 {
		c.Maintenance.LinkRetention.Duration = config.LinkRetention
	}
}

// DefaultCommands is the product vocabulary, in precedence order.
func DefaultCommands() []CommandConfig {
	return []CommandConfig{
		{Name: config.CommandHelp, Keyword: "ayuda"},
		{Name: config.CommandOpenPack, Keyword: "abrir sobre"},
		{Name: config.CommandViewAlbum, Keyword: "ver album"},
	}
}

// Validate reports every missing required setting at once. withDB is false
// when the process runs on the in-memory store.
func (c *Config) Validate(withDB bool) error {
	var errs []error
	if c.WhatsApp.Token == "" {
		errs = append(errs, errors.New("whatsapp.token (WA_TOKEN) is required"))
	}
	if c.WhatsApp.PhoneNumberID == "" {
		errs = append(errs, errors.New("whatsapp.phone_number_id is required"))
	}
	if c.WhatsApp.VerifyToken == "" {
		errs = append(errs, errors.New("whatsapp.verify_token (WA_VERIFY_TOKEN) is required"))
	}
	if withDB && c.DB.Host == "" {
		errs = append(errs, errors.New("db.host is required"))
	}
	if c.Economy.PackSize < 1 {
		errs = append(errs, fmt.Errorf("economy.pack_size must be positive, got %d", c.Economy.PackSize))
	}
	switch c.Economy.InventoryMode {
	case config.InventoryModeUpsert, config.InventoryModeCheckThenWrite:
	default:
		errs = append(errs, fmt.Errorf("economy.inventory_mode %q is not supported", c.Economy.InventoryMode))
	}
	for _, cmd := range c.Bot.Commands {
		switch cmd.Name {
		case config.CommandHelp, config.CommandOpenPack, config.CommandViewAlbum:
		default:
			errs = append(errs, fmt.Errorf("bot.commands: unknown command %q", cmd.Name))
		}
		if strings.TrimSpace(cmd.Keyword) == "" {
			errs = append(errs, fmt.Errorf("bot.commands: command %q has no keyword", cmd.Name))
		}
	}
	return errors.Join(errs...)
}
