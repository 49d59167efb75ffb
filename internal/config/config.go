package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds all application configuration
type Config struct {
	SAP          SAPConfig        `mapstructure:"sap"`
	Workbook     WorkbookConfig   `mapstructure:"workbook"`
	Automation   AutomationConfig `mapstructure:"automation"`
	Database     DatabaseConfig   `mapstructure:"database"`
	Server       ServerConfig     `mapstructure:"server"`
	Lark         LarkConfig       `mapstructure:"lark"`
	Logger       LoggerConfig     `mapstructure:"logger"`
	LocatorsPath string           `mapstructure:"locators_path"`
}

// SAPConfig identifies the host client and how to reach it
type SAPConfig struct {
	Environment string        `mapstructure:"environment"` // connection entry in the logon pad
	System      string        `mapstructure:"system"`      // credential store service name
	LogonPath   string        `mapstructure:"logon_path"`
	BridgeURL   string        `mapstructure:"bridge_url"`
	BootDelay   time.Duration `mapstructure:"boot_delay"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// WorkbookConfig holds the default run inputs; CLI flags and API requests override them
type WorkbookConfig struct {
	Path            string `mapstructure:"path"`
	InvoiceDir      string `mapstructure:"invoice_dir"`
	ServiceSheetDir string `mapstructure:"service_sheet_dir"`
}

// AutomationConfig tunes the flows
type AutomationConfig struct {
	SettleDelay      time.Duration `mapstructure:"settle_delay"`
	CheckAttachments bool          `mapstructure:"check_attachments"`
}

// DatabaseConfig holds run ledger configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LarkConfig holds run notification configuration
type LarkConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	AppID         string        `mapstructure:"app_id"`
	AppSecret     string        `mapstructure:"app_secret"`
	ReceiveIDType string        `mapstructure:"receive_id_type"`
	ReceiveID     string        `mapstructure:"receive_id"`
	APITimeout    time.Duration `mapstructure:"api_timeout"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	OutputPath  string `mapstructure:"output_path"`
	Format      string `mapstructure:"format"`
	OperatorLog string `mapstructure:"operator_log"`
}

// Load reads .env, then the YAML file at configPath (optional), then
// environment variables prefixed with LODGING_ (LODGING_SAP_ENVIRONMENT ...).
func Load(configPath string) (*Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("LODGING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// SAP defaults
	v.SetDefault("sap.environment", "F04 - SAP Scripting Produção")
	v.SetDefault("sap.system", "F04")
	v.SetDefault("sap.logon_path", `C:\Program Files (x86)\SAP\FrontEnd\SAPgui\saplogon.exe`)
	v.SetDefault("sap.bridge_url", "http://127.0.0.1:8765")
	v.SetDefault("sap.boot_delay", 3*time.Second)
	v.SetDefault("sap.timeout", 60*time.Second)

	// Automation defaults
	v.SetDefault("automation.settle_delay", time.Second)
	v.SetDefault("automation.check_attachments", true)

	// Database defaults
	v.SetDefault("database.path", "data/lodging.db")
	v.SetDefault("database.max_open_conns", 1)
	v.SetDefault("database.max_idle_conns", 1)
	v.SetDefault("database.conn_max_lifetime", 0)

	// Server defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	// Lark defaults
	v.SetDefault("lark.enabled", false)
	v.SetDefault("lark.receive_id_type", "chat_id")
	v.SetDefault("lark.api_timeout", 30*time.Second)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.operator_log", "logs/lodging.log")
}

// bindEnvVars binds the unprefixed names used by existing deployments
func bindEnvVars(v *viper.Viper) {
	v.BindEnv("lark.app_id", "LODGING_LARK_APP_ID", "LARK_APP_ID")
	v.BindEnv("lark.app_secret", "LODGING_LARK_APP_SECRET", "LARK_APP_SECRET")
	v.BindEnv("lark.receive_id", "LODGING_LARK_RECEIVE_ID", "LARK_RECEIVE_ID")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.SAP.Environment == "" {
		return fmt.Errorf("sap.environment is required")
	}
	if c.SAP.System == "" {
		return fmt.Errorf("sap.system is required")
	}
	if c.SAP.BootDelay < 0 {
		return fmt.Errorf("sap.boot_delay must not be negative")
	}
	if c.Automation.SettleDelay < 0 {
		return fmt.Errorf("automation.settle_delay must not be negative")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}

	if c.Lark.Enabled {
		if c.Lark.AppID == "" {
			return fmt.Errorf("lark.app_id is required when lark is enabled")
		}
		if c.Lark.AppSecret == "" {
			return fmt.Errorf("lark.app_secret is required when lark is enabled")
		}
		if c.Lark.ReceiveID == "" {
			return fmt.Errorf("lark.receive_id is required when lark is enabled")
		}
	}

	switch c.Logger.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logger.format must be json or console, got %q", c.Logger.Format)
	}

	return nil
}
