package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMinio    = "minio"
	StorageSupabase = "supabase"

	GeneratorTemplate = "template"
	GeneratorGemini   = "gemini"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer HTTPServer `yaml:"http_server"`
	CORS       CORS       `yaml:"cors"`
	Postgres   Postgres   `yaml:"postgres"`
	JWT        JWT        `yaml:"jwt"`
	ES         ES         `yaml:"elasticsearch"`
	Storage    Storage    `yaml:"storage"`
	Generator  Generator  `yaml:"generator"`
	Deadlines  Deadlines  `yaml:"deadlines"`
	Reminders  Reminders  `yaml:"reminders"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8081"`
	Timeout     time.Duration `yaml:"timeout" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type CORS struct {
	AllowOrigins []string `yaml:"allow_origins" env-default:"http://localhost:3000"`
}

type Postgres struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"POSTGRES_USER"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD"`
	DBName   string `yaml:"dbname" env:"POSTGRES_DB"`
}

type JWT struct {
	SecretKey  string        `yaml:"secret_key" env:"JWT_SECRET_KEY"`
	Issuer     string        `yaml:"issuer" env-default:"learnhub"`
	AccessTTL  time.Duration `yaml:"access_token_ttl" env-default:"15m"`
	RefreshTTL time.Duration `yaml:"refresh_token_ttl" env-default:"720h"`
}

type ES struct {
	Enabled  bool     `yaml:"enabled" env:"ES_ENABLED"`
	Hosts    []string `yaml:"hosts"`
	Index    string   `yaml:"index" env-default:"courses"`
	Password string   `yaml:"password" env:"ES_PASSWORD"`
}

type Storage struct {
	Provider string   `yaml:"provider" env:"STORAGE_PROVIDER" env-default:"minio"`
	Minio    Minio    `yaml:"minio"`
	Supabase Supabase `yaml:"supabase"`
}

type Minio struct {
	Endpoint      string                  `yaml:"endpoint" env-default:"minio:9000"`
	AccessKey     string                  `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
	SecretKey     string                  `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
	UseSSL        bool                    `yaml:"use_ssl"`
	PublicBaseURL string                  `yaml:"public_base_url"`
	Buckets       map[string]BucketConfig `yaml:"buckets"`
}

type BucketConfig struct {
	Name string `yaml:"name"`
}

type Supabase struct {
	URL              string `yaml:"url" env:"SUPABASE_URL"`
	Key              string `yaml:"key" env:"SUPABASE_KEY"`
	ReferencesBucket string `yaml:"references_bucket" env-default:"course-references"`
	CoversBucket     string `yaml:"covers_bucket" env-default:"course-covers"`
}

type Generator struct {
	Provider string `yaml:"provider" env:"GENERATOR_PROVIDER" env-default:"template"`
	Gemini   Gemini `yaml:"gemini"`
}

type Gemini struct {
	APIKey string `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model  string `yaml:"model" env-default:"gemini-2.0-flash"`
}

type Deadlines struct {
	Student DeadlinePolicy `yaml:"student"`
	Teacher DeadlinePolicy `yaml:"teacher"`
}

type DeadlinePolicy struct {
	Window     time.Duration `yaml:"window"`
	UrgentDays int           `yaml:"urgent_days"`
}

type Reminders struct {
	Enabled     bool   `yaml:"enabled" env:"REMINDERS_ENABLED"`
	Schedule    string `yaml:"schedule" env-default:"0 8 * * *"`
	SendgridKey string `yaml:"sendgrid_key" env:"SENDGRID_API_KEY"`
	FromName    string `yaml:"from_name" env-default:"LearnHub"`
	FromEmail   string `yaml:"from_email" env-default:"no-reply@learnhub.local"`
}

// StudentPolicy returns the priority-task policy, falling back to a 3 day window and urgency at 1 day.
func (d Deadlines) StudentPolicy() DeadlinePolicy {
	return d.Student.withDefaults(72*time.Hour, 1)
}

// TeacherPolicy returns the upcoming-deadline policy, falling back to a 7 day window and urgency at 2 days.
func (d Deadlines) TeacherPolicy() DeadlinePolicy {
	return d.Teacher.withDefaults(7*24*time.Hour, 2)
}

func (p DeadlinePolicy) withDefaults(window time.Duration, urgent int) DeadlinePolicy {
	if p.Window <= 0 {
		p.Window = window
	}
	if p.UrgentDays <= 0 {
		p.UrgentDays = urgent
	}
	return p
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("Config file not exist: %s", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("Can not read config file %s", err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
