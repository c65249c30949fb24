package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	RepublishSync RepublishSync `mapstructure:",squash"`
	Pipeline      Pipeline      `mapstructure:",squash"`
	SecretKey     string        `mapstructure:"secret_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// Database guarda os cinco parâmetros de conexão com o Postgres.
// O DSN é montado a partir deles; credenciais nunca ficam no código.
type Database struct {
	DSN      string `mapstructure:"-"`
	Host     string `mapstructure:"pg_host"`
	Port     string `mapstructure:"pg_port"`
	Name     string `mapstructure:"pg_db"`
	User     string `mapstructure:"pg_user"`
	Password string `mapstructure:"pg_pass"`
	SSLMode  string `mapstructure:"pg_sslmode"`
}

// RepublishSync configura o agendador que reexecuta o pipeline sobre o
// staging acumulado para manter o snapshot da tabela fato atualizado.
type RepublishSync struct {
	CronSchedule string `mapstructure:"republish_sync_cron"`
	Enabled      bool   `mapstructure:"republish_sync_enabled"`
}

// Pipeline configura limites operacionais do pipeline
type Pipeline struct {
	PreviewRows int `mapstructure:"pipeline_preview_rows"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("PG_HOST", "localhost")
	viper.SetDefault("PG_PORT", "5432")
	viper.SetDefault("PG_DB", "campaigns")
	viper.SetDefault("PG_USER", "postgres")
	viper.SetDefault("PG_PASS", "root")
	viper.SetDefault("PG_SSLMODE", "disable")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	// Defaults do agendador de republicação do snapshot
	viper.SetDefault("REPUBLISH_SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("REPUBLISH_SYNC_ENABLED", false)

	viper.SetDefault("PIPELINE_PREVIEW_ROWS", 5)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
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

	config.Database.DSN = fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		config.Database.User,
		config.Database.Password,
		config.Database.Host,
		config.Database.Port,
		config.Database.Name,
		config.Database.SSLMode,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
