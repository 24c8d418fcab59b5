package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Upload        Upload        `mapstructure:",squash"`
	Display       Display       `mapstructure:",squash"`
	Groq          Groq          `mapstructure:",squash"`
	UploadCleanup UploadCleanup `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Upload struct {
	Dir               string `mapstructure:"upload_dir"`
	MaxFileSizeMB     int64  `mapstructure:"upload_max_file_size_mb"`
	AllowedExtensions string `mapstructure:"upload_allowed_extensions"`
}

type Display struct {
	CurrencySymbol string `mapstructure:"display_currency_symbol"`
}

type Groq struct {
	URL               string  `mapstructure:"groq_url"`
	APIKey            string  `mapstructure:"groq_api_key"`
	Model             string  `mapstructure:"groq_model"`
	RequestsPerMinute float64 `mapstructure:"groq_requests_per_minute"`
}

type UploadCleanup struct {
	CronSchedule string `mapstructure:"upload_cleanup_cron"`
	MaxAgeHours  int    `mapstructure:"upload_cleanup_max_age_hours"`
	Enabled      bool   `mapstructure:"upload_cleanup_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("UPLOAD_MAX_FILE_SIZE_MB", 50)
	viper.SetDefault("UPLOAD_ALLOWED_EXTENSIONS", ".xlsx,.xls")

	viper.SetDefault("DISPLAY_CURRENCY_SYMBOL", "Rp")

	viper.SetDefault("GROQ_URL", "https://api.groq.com/openai/v1")
	viper.SetDefault("GROQ_API_KEY", "")
	viper.SetDefault("GROQ_MODEL", "llama3-70b-8192")
	viper.SetDefault("GROQ_REQUESTS_PER_MINUTE", 20)

	// Limpeza de arquivos temporários de upload
	viper.SetDefault("UPLOAD_CLEANUP_CRON", "0 * * * *") // A cada hora
	viper.SetDefault("UPLOAD_CLEANUP_MAX_AGE_HOURS", 6)
	viper.SetDefault("UPLOAD_CLEANUP_ENABLED", true)
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	return config, nil
}

// AllowedExtensionList retorna as extensões aceitas já normalizadas
func (u Upload) AllowedExtensionList() []string {
	parts := strings.Split(u.AllowedExtensions, ",")
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, ".") {
			p = "." + p
		}
		exts = append(exts, p)
	}
	return exts
}

// MaxFileSizeBytes retorna o limite de upload em bytes
func (u Upload) MaxFileSizeBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// loadEnvFile tenta carregar o .env das localizações conhecidas
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("não foi possível obter o diretório atual: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("arquivo .env carregado de: ", location)
			return
		}
	}
}
