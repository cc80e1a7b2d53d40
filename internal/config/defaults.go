package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default values for optional settings.
const (
	DefaultLogLevel         = "info"
	DefaultLogJSON          = true
	DefaultHTTPPort         = 3000
	DefaultStoreKeyPrefix   = "regbot:v1"
	DefaultStoreDialTimeout = 5 * time.Second
	DefaultMetricsAddr      = ":9090"

	DefaultStorePingSchedule    = "0 */5 * * * *"
	DefaultMemberReportSchedule = "0 0 9 * * *"
)

// DefaultMessages are the user-facing texts used when none are configured.
var DefaultMessages = MessagesConfig{
	Welcome:           "👋 Welcome, {name}! Tap the button below to register.",
	RegisterButton:    "📝 Register",
	RegisteredButton:  "✅ Registered",
	AlreadyRegistered: "You are already registered.",
	AccessDenied:      "🚫 This button is not for you.",
	Registered:        "✅ {name}, you are registered!",
	EnableDMAlert:     "Registered! Please start a private chat with me so I can message you.",
	EnableDMPrompt:    "To receive messages from me, open a private chat and press Start.",
	OpenChatButton:    "💬 Open chat",
	DMReady:           "✅ Direct messages enabled. You will get notifications here.",
	Stats:             "Group: {group}\nRegistered members: {count}",
	MemberReport:      "📊 Registered members: {count}",
	NotAuthorized:     "🚫 You are not authorized to use this command.",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.json", DefaultLogJSON)

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.owner_id", 0)

	v.SetDefault("store.url", "")
	v.SetDefault("store.token", "")
	v.SetDefault("store.key_prefix", DefaultStoreKeyPrefix)
	v.SetDefault("store.dial_timeout", DefaultStoreDialTimeout)

	v.SetDefault("http.port", DefaultHTTPPort)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.addr", DefaultMetricsAddr)

	v.SetDefault("scheduler.tasks.store_ping.enabled", true)
	v.SetDefault("scheduler.tasks.store_ping.schedule", DefaultStorePingSchedule)
	v.SetDefault("scheduler.tasks.member_report.enabled", false)
	v.SetDefault("scheduler.tasks.member_report.schedule", DefaultMemberReportSchedule)

	v.SetDefault("messages.welcome", DefaultMessages.Welcome)
	v.SetDefault("messages.register_button", DefaultMessages.RegisterButton)
	v.SetDefault("messages.registered_button", DefaultMessages.RegisteredButton)
	v.SetDefault("messages.already_registered", DefaultMessages.AlreadyRegistered)
	v.SetDefault("messages.access_denied", DefaultMessages.AccessDenied)
	v.SetDefault("messages.registered", DefaultMessages.Registered)
	v.SetDefault("messages.enable_dm_alert", DefaultMessages.EnableDMAlert)
	v.SetDefault("messages.enable_dm_prompt", DefaultMessages.EnableDMPrompt)
	v.SetDefault("messages.open_chat_button", DefaultMessages.OpenChatButton)
	v.SetDefault("messages.dm_ready", DefaultMessages.DMReady)
	v.SetDefault("messages.stats", DefaultMessages.Stats)
	v.SetDefault("messages.member_report", DefaultMessages.MemberReport)
	v.SetDefault("messages.not_authorized", DefaultMessages.NotAuthorized)
}
