package config

import "time"

// Application-wide constants organized by domain

// Economy Constants
const (
	// Packs
	PackSize     = 5
	PackCooldown = 24 * time.Hour

	// Album links
	AccessTokenTTL = 10 * time.Minute

	// Inventory strategies
	InventoryModeUpsert         = "upsert"
	InventoryModeCheckThenWrite = "check-then-write"

	// Default display name prefix for new profiles
	DefaultUsernamePrefix = "Usuario"
	DefaultUserType       = "whatsapp"
)

// Rarity weights (relative, not percentages)
const (
	CommonWeight    = 70
	RareWeight      = 20
	EpicWeight      = 8
	LegendaryWeight = 2
)

// Rarity indicators shown in pack summaries
const (
	CommonEmoji    = "⚪"
	RareEmoji      = "🟡"
	EpicEmoji      = "🟣"
	LegendaryEmoji = "🟠"
)

// Command names
const (
	CommandHelp      = "help"
	CommandOpenPack  = "open_pack"
	CommandViewAlbum = "view_album"
)

// Messaging Constants
const (
	DefaultWakeWord        = "@silenole"
	DefaultAlbumURL        = "https://silenole.vercel.app/auth/token"
	DefaultGraphBaseURL    = "https://graph.facebook.com"
	DefaultGraphAPIVersion = "v21.0"
	WhatsAppObject         = "whatsapp_business_account"
	WebhookModeSubscribe   = "subscribe"
)

// Timeouts
const (
	DefaultQueryTimeout     = 10 * time.Second
	MessageHandlingTimeout  = 20 * time.Second
	CommandExecutionTimeout = 15 * time.Second
	SlowCommandThreshold    = 2 * time.Second
	NotificationTimeout     = 10 * time.Second
	HealthCheckTimeout      = 2 * time.Second
	DefaultTxTimeout        = 30 * time.Second
	ShutdownTimeout         = 15 * time.Second
)

// Maintenance
const (
	LinkPurgeSchedule = "@hourly"
	LinkRetention     = 24 * time.Hour
)

// Cache settings
const (
	StickerCacheSize = 2048
	DedupeCacheSize  = 10000
	DedupeWindow     = 24 * time.Hour
)
