package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port             int            `mapstructure:"port"`
	Db               DbSecrets      `mapstructure:"db"`
	DataJockeyApiKey string         `mapstructure:"datajockey"`
	ChatGPTApiKey    string         `mapstructure:"gpt"`
	Alpaca           AlpacaSecrets  `mapstructure:"alpaca"`
	Auth             AuthSecrets    `mapstructure:"auth"`
	Ses              SesSecrets     `mapstructure:"ses"`
	Backtest         BacktestConfig `mapstructure:"backtest"`
}

type DbSecrets struct {
	Host      string `mapstructure:"host"`
	User      string `mapstructure:"user"`
	Port      string `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	Database  string `mapstructure:"database"`
	EnableSsl bool   `mapstructure:"enablessl"`
}

func (t DbSecrets) ToConnectionStr() string {
	x := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		t.Host, t.Port, t.User, t.Password, t.Database)
	if !t.EnableSsl {
		x += " sslmode=disable"
	}
	return x
}

type AlpacaSecrets struct {
	ApiKey    string `mapstructure:"apikey"`
	ApiSecret string `mapstructure:"apisecret"`
	Endpoint  string `mapstructure:"endpoint"`
}

func (a AlpacaSecrets) Enabled() bool {
	return a.ApiKey != "" && a.ApiSecret != ""
}

// AuthSecrets verify bearer tokens. JwtSecret signs Supabase HS256 tokens;
// SupabaseUrl locates the JWKS used for ES256 tokens.
type AuthSecrets struct {
	JwtSecret   string `mapstructure:"jwtsecret"`
	SupabaseUrl string `mapstructure:"supabaseurl"`
}

type SesSecrets struct {
	Region       string `mapstructure:"region"`
	FromAddress  string `mapstructure:"fromaddress"`
	ContactInbox string `mapstructure:"contactinbox"`
}

func (s SesSecrets) Enabled() bool {
	return s.FromAddress != "" && s.ContactInbox != ""
}

type BacktestConfig struct {
	Timeout       time.Duration `mapstructure:"timeout"`
	Workers       int           `mapstructure:"workers"`
	PersistScores bool          `mapstructure:"persistscores"`
	MaxDays       int           `mapstructure:"maxdays"`
}

const envPrefix = "ALPHA"

func Defaults() *Config {
	return &Config{
		Port: 3009,
		Db: DbSecrets{
			Host:     "localhost",
			Port:     "5440",
			User:     "postgres",
			Database: "postgres",
		},
		Ses: SesSecrets{
			Region: "us-east-1",
		},
		Backtest: BacktestConfig{
			Timeout: 60 * time.Second,
			Workers: 10,
			MaxDays: 365 * 25,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("port", d.Port)
	v.SetDefault("db.host", d.Db.Host)
	v.SetDefault("db.port", d.Db.Port)
	v.SetDefault("db.user", d.Db.User)
	v.SetDefault("db.password", "")
	v.SetDefault("db.database", d.Db.Database)
	v.SetDefault("db.enablessl", false)
	v.SetDefault("datajockey", "")
	v.SetDefault("gpt", "")
	v.SetDefault("alpaca.apikey", "")
	v.SetDefault("alpaca.apisecret", "")
	v.SetDefault("alpaca.endpoint", "")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.supabaseurl", "")
	v.SetDefault("ses.region", d.Ses.Region)
	v.SetDefault("ses.fromaddress", "")
	v.SetDefault("ses.contactinbox", "")
	v.SetDefault("backtest.timeout", d.Backtest.Timeout)
	v.SetDefault("backtest.workers", d.Backtest.Workers)
	v.SetDefault("backtest.persistscores", false)
	v.SetDefault("backtest.maxdays", d.Backtest.MaxDays)
}

// SecretsPath picks the secrets file for the current ALPHA_ENV.
func SecretsPath() string {
	if p := os.Getenv("ALPHA_SECRETS_FILE"); p != "" {
		return p
	}
	switch strings.ToLower(os.Getenv("ALPHA_ENV")) {
	case "dev":
		return "secrets-dev.json"
	case "test":
		return "secrets-test.json"
	}
	return "/go/src/app/secrets.json"
}

// Load reads the config file at path, then applies ALPHA_* environment
// overrides. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	// values written as ${NAME} are read from the environment
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func LoadSecrets() (*Config, error) {
	return Load(SecretsPath())
}

func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid config: port must be between 1 and 65535, got %d", c.Port)
	}
	if c.Db.Host == "" || c.Db.Database == "" {
		return fmt.Errorf("invalid config: db host and database are required")
	}
	if c.Backtest.Timeout <= 0 {
		return fmt.Errorf("invalid config: backtest timeout must be positive, got %s", c.Backtest.Timeout)
	}
	if c.Backtest.Workers < 1 {
		return fmt.Errorf("invalid config: backtest workers must be at least 1, got %d", c.Backtest.Workers)
	}
	if (c.Alpaca.ApiKey == "") != (c.Alpaca.ApiSecret == "") {
		return fmt.Errorf("invalid config: alpaca apiKey and apiSecret must be set together")
	}
	return nil
}
