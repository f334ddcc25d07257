package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App      App      `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
	Storage  Storage  `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	// Path al archivo SQLite; se crea si no existe
	Path string `mapstructure:"database_path"`
}

type Storage struct {
	ReceiptsDir string `mapstructure:"receipts_dir"`
	ReportsDir  string `mapstructure:"reports_dir"`
	StaticDir   string `mapstructure:"static_dir"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", 5001)

	viper.SetDefault("DATABASE_PATH", "sales.db")

	viper.SetDefault("RECEIPTS_DIR", "storage/receipts")
	viper.SetDefault("REPORTS_DIR", "storage/reports")
	viper.SetDefault("STATIC_DIR", "web/static")

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	// Primero cargar el archivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// El .env es opcional: godotenv ya lo intentó y las variables de
	// ambiente siempre ganan
	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Sin archivo .env legible por viper: ", err)
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

// loadEnvFile intenta cargar el .env desde las ubicaciones habituales
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("No se pudo obtener el directorio actual: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Archivo .env cargado desde: ", location)
			return
		}
	}
}
