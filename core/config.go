package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host            string
		Address         string
		DebugHost       string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	// BackendConfig locates the academy REST API. An empty BaseURL selects the in-memory store.
	BackendConfig struct {
		BaseURL string
		Token   string
		Timeout time.Duration
	}

	CurrencyConfig struct {
		BaseCode        string
		LegacyBaseNames []string
		CacheTTL        time.Duration
	}

	PayoutConfig struct {
		AllowNegativeTotal bool
	}

	Config struct {
		AppName          string
		Env              string
		Build            string
		Debug            bool
		TestMode         bool
		WorkDir          string
		FrontendBaseURL  string
		DefaultFromEmail mail.Address
		RollbarToken     string
		SendgridAPIKey   string

		Server   ServerConfig
		Backend  BackendConfig
		Currency CurrencyConfig
		Payout   PayoutConfig
	}
)

// NewConfig loads the configuration of the current ENV (DEV by default) from the environment,
// after loading `config/.env.<env>` if it exists.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("appName", "Academia")
	v.SetDefault("build", "develop")
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromName", "Academia")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddress", ":8000")
	v.SetDefault("serverDebugHost", ":4000")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("serverDisableReqLogs", false)
	v.SetDefault("backendBaseURL", "")
	v.SetDefault("backendToken", "")
	v.SetDefault("backendTimeout", 10*time.Second)
	v.SetDefault("currencyBaseCode", "USD")
	v.SetDefault("currencyLegacyBaseNames", []string{"dollar", "dólar"})
	v.SetDefault("currencyCacheTTL", 10*time.Minute)
	v.SetDefault("payoutAllowNegativeTotal", false)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		AppName:         v.GetString("appName"),
		Env:             env,
		Build:           v.GetString("build"),
		Debug:           v.GetBool("debug"),
		TestMode:        v.GetBool("testMode"),
		WorkDir:         wd,
		FrontendBaseURL: v.GetString("frontendBaseURL"),
		DefaultFromEmail: mail.Address{
			Name:    v.GetString("defaultFromName"),
			Address: v.GetString("defaultFromEmail"),
		},
		RollbarToken:   v.GetString("rollbarToken"),
		SendgridAPIKey: v.GetString("sendgridApiKey"),
		Server: ServerConfig{
			Host:            v.GetString("serverHost"),
			Address:         v.GetString("serverAddress"),
			DebugHost:       v.GetString("serverDebugHost"),
			ShutdownTimeout: v.GetDuration("serverShutdownTimeout"),
			DisableReqLogs:  v.GetBool("serverDisableReqLogs"),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(v.GetString("backendBaseURL"), "/"),
			Token:   v.GetString("backendToken"),
			Timeout: v.GetDuration("backendTimeout"),
		},
		Currency: CurrencyConfig{
			BaseCode:        strings.ToUpper(v.GetString("currencyBaseCode")),
			LegacyBaseNames: v.GetStringSlice("currencyLegacyBaseNames"),
			CacheTTL:        v.GetDuration("currencyCacheTTL"),
		},
		Payout: PayoutConfig{
			AllowNegativeTotal: v.GetBool("payoutAllowNegativeTotal"),
		},
	}
}

// NewTestConfig returns the configuration used by tests; it never reads the environment.
func NewTestConfig() *Config {
	return &Config{
		AppName:          "Academia",
		Env:              "TEST",
		Build:            "test",
		TestMode:         true,
		FrontendBaseURL:  "http://localhost:3000",
		DefaultFromEmail: mail.Address{Name: "Academia", Address: "noreply@localhost"},
		Server: ServerConfig{
			Host:            "localhost",
			ShutdownTimeout: time.Second,
			DisableReqLogs:  true,
		},
		Backend: BackendConfig{Timeout: time.Second},
		Currency: CurrencyConfig{
			BaseCode:        "USD",
			LegacyBaseNames: []string{"dollar", "dólar"},
			CacheTTL:        time.Minute,
		},
	}
}
