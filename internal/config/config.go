package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "./config/local.yaml"

type Config struct {
	Env        string `yaml:"env" env:"FAMIGLIA_ENV" env-default:"prod"`
	Storage    `yaml:"storage"`
	HTTPServer `yaml:"http_server"`
	Auth       `yaml:"auth"`
	Mail       `yaml:"mail"`
	Scheduler  `yaml:"scheduler"`
	Calendario `yaml:"calendario"`
	Kouza      `yaml:"kouza"`
}

type Storage struct {
	Backend    string `yaml:"backend" env:"FAMIGLIA_STORAGE" env-default:"json"`
	DataDir    string `yaml:"data_dir" env:"FAMIGLIA_DATA_DIR" env-default:"./data"`
	DBUser     string `yaml:"db_user" env:"FAMIGLIA_DB_USER"`
	DBPassword string `yaml:"db_password" env:"FAMIGLIA_DB_PASSWORD"`
	DBHost     string `yaml:"db_host" env:"FAMIGLIA_DB_HOST" env-default:"localhost"`
	DBPort     int    `yaml:"db_port" env:"FAMIGLIA_DB_PORT" env-default:"3306"`
	DBName     string `yaml:"db_name" env:"FAMIGLIA_DB_NAME" env-default:"famigliapp"`
}

type HTTPServer struct {
	Address        string        `yaml:"address" env:"FAMIGLIA_ADDRESS" env-default:"localhost:4001"`
	Timeout        time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env-default:"60s"`
	AllowedOrigins []string      `yaml:"allowed_origins" env-default:"http://localhost:5173"`
	FrontendDir    string        `yaml:"frontend_dir" env-default:"./frontend-dist"`
}

type Auth struct {
	JWTSecret  string        `yaml:"jwt_secret" env:"FAMIGLIA_JWT_SECRET" env-required:"true"`
	TokenTTL   time.Duration `yaml:"token_ttl" env-default:"168h"`
	AdminLogin string        `yaml:"admin_login" env:"FAMIGLIA_ADMIN_LOGIN"`
	AdminPass  string        `yaml:"admin_pass" env:"FAMIGLIA_ADMIN_PASS"`
}

type Mail struct {
	Backend        string `yaml:"backend" env:"FAMIGLIA_MAIL" env-default:"console"`
	SendgridAPIKey string `yaml:"sendgrid_api_key" env:"SENDGRID_API_KEY"`
	FromName       string `yaml:"from_name" env-default:"Famigliapp"`
	FromAddress    string `yaml:"from_address" env-default:"noreply@localhost"`
	AppName        string `yaml:"app_name" env-default:"Famigliapp"`
}

type Scheduler struct {
	Enabled               bool          `yaml:"enabled" env:"FAMIGLIA_SCHEDULER" env-default:"true"`
	RunAt                 string        `yaml:"run_at" env-default:"07:00"`
	CheckInterval         time.Duration `yaml:"check_interval" env-default:"1m"`
	EventDaysBefore       int           `yaml:"event_days_before" env-default:"1"`
	KouzaRemindDaysBefore int           `yaml:"kouza_remind_days_before" env-default:"1"`
	QuestRemindDaysBefore int           `yaml:"quest_remind_days_before" env-default:"1"`
}

type Calendario struct {
	RulesPath string `yaml:"rules_path" env:"FAMIGLIA_SHIFT_RULES" env-default:"./config/shift_rules.yaml"`
}

type Kouza struct {
	DefaultDeadlineDays int `yaml:"default_deadline_days" env-default:"7"`
}

// RunAtClock разбирает scheduler.run_at ("HH:MM").
func (s Scheduler) RunAtClock() (hour, minute int, err error) {
	t, err := time.Parse("15:04", s.RunAt)
	if err != nil {
		return 0, 0, fmt.Errorf("scheduler.run_at %q: %w", s.RunAt, err)
	}
	return t.Hour(), t.Minute(), nil
}

// Load читает .env (если есть), затем YAML-конфиг с переопределением из переменных окружения.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = defaultConfigPath
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}

	if _, _, err := cfg.Scheduler.RunAtClock(); err != nil {
		return nil, err
	}

	switch cfg.Storage.Backend {
	case "json", "mysql":
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return &cfg, nil
}

func MustConfig() *Config {
	cfg, err := Load("")
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}
