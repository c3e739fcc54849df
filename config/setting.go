package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type serverConfig struct {
	Port        int    `koanf:"port" validate:"required"`
	Mode        string `koanf:"mode" validate:"required"`
	Concurrency int    `koanf:"concurrency" validate:"required"`
	BodyLimit   int    `koanf:"body_limit" validate:"required"`
	AppName     string `koanf:"app_name" validate:"required"`
}

type logLevel string

const (
	Debug logLevel = "debug"
	Info  logLevel = "info"
	Warn  logLevel = "warn"
	Error logLevel = "error"
	Fatal logLevel = "fatal"
	Panic logLevel = "panic"
)

type Module string

const (
	ModuleDatabase Module = "database"
	ModuleOracle   Module = "oracle"
	ModuleNotebook Module = "notebook"
	ModuleResolver Module = "resolver"
	ModuleScenario Module = "scenario"
	ModuleAudio    Module = "audio"
	ModuleImages   Module = "images"
	ModuleS3       Module = "s3"
	ModuleCors     Module = "cors"
	ModuleServer   Module = "server"
	ModuleSetting  Module = "setting"
)

type databaseConfig struct {
	Host         string `koanf:"host" validate:"required"`
	Port         int    `koanf:"port" validate:"required"`
	User         string `koanf:"user" validate:"required"`
	Password     string `koanf:"password"`
	Name         string `koanf:"name" validate:"required"`
	MaxIdleConns int    `koanf:"max_idle_conns" validate:"required"`
	MaxOpenConns int    `koanf:"max_open_conns" validate:"required"`
	MaxLifetime  int    `koanf:"max_lifetime" validate:"required"`
}

type openaiConfig struct {
	Key        string `koanf:"key"`
	Model      string `koanf:"model" validate:"required"`
	TTSModel   string `koanf:"tts_model" validate:"required"`
	ImageModel string `koanf:"image_model" validate:"required"`
}

type oracleConfig struct {
	TimeoutSeconds int `koanf:"timeout_seconds" validate:"required"`
}

type audioConfig struct {
	SampleRate   int    `koanf:"sample_rate" validate:"required"`
	DefaultVoice string `koanf:"default_voice" validate:"required"`
}

type learnerConfig struct {
	SourceLang string `koanf:"source_lang" validate:"required"`
	TargetLang string `koanf:"target_lang" validate:"required"`
}

type corsConfig struct {
	AllowOrigins []string `koanf:"allow_origins"`
	AllowMethods []string `koanf:"allow_methods"`
	AllowHeaders []string `koanf:"allow_headers"`
}

type s3Config struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Region    string `koanf:"region"`
	UseSSL    bool   `koanf:"use_ssl"`
	Bucket    string `koanf:"bucket"`
}

type config struct {
	Server   serverConfig   `koanf:"server"`
	Database databaseConfig `koanf:"database"`
	OpenAI   openaiConfig   `koanf:"openai"`
	Oracle   oracleConfig   `koanf:"oracle"`
	Audio    audioConfig    `koanf:"audio"`
	Learner  learnerConfig  `koanf:"learner"`
	LogLevel logLevel       `koanf:"log_level"`
	Dns      string         `koanf:"dns"`
	S3       s3Config       `koanf:"s3"`
	Cors     corsConfig     `koanf:"cors"`
}

func buildMySQLDSN(cfg databaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Name,
	)
}

var defaultConfig = config{
	Server: serverConfig{
		Port:        8000,
		Mode:        "release",
		Concurrency: 256,
		BodyLimit:   4 * 1024 * 1024,
		AppName:     "ai-vocab-coach",
	},
	Database: databaseConfig{
		Host:         "127.0.0.1",
		Port:         3306,
		User:         "root",
		Password:     "",
		Name:         "vocabcoach",
		MaxIdleConns: 4,
		MaxOpenConns: 16,
		MaxLifetime:  30,
	},
	OpenAI: openaiConfig{
		Key:        "",
		Model:      "gpt-4o-mini",
		TTSModel:   "gpt-4o-mini-tts",
		ImageModel: "gpt-image-1",
	},
	Oracle: oracleConfig{
		TimeoutSeconds: 20,
	},
	Audio: audioConfig{
		SampleRate:   24000,
		DefaultVoice: "alloy",
	},
	Learner: learnerConfig{
		SourceLang: "English",
		TargetLang: "Spanish",
	},
	LogLevel: Info,
	S3: s3Config{
		Endpoint:  "http://localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Region:    "us-east-1",
		UseSSL:    false,
		Bucket:    "mnemonic-images",
	},
}

var (
	Cfg  = defaultConfig
	once sync.Once
)

func init() {
	path := "config.yaml"

	once.Do(func() {
		k := koanf.New(".")

		validate := validator.New()
		// defaults
		Cfg = defaultConfig

		// file
		if e := k.Load(file.Provider(path), yaml.Parser()); e != nil && !os.IsNotExist(e) {
			return
		}

		// env APP_SERVER_PORT
		if e := k.Load(env.Provider("APP_", ".", func(s string) string {
			return strings.ToLower(strings.TrimPrefix(s, "APP_"))
		}), nil); e != nil {
			return
		}

		// bind
		if e := k.Unmarshal("", &Cfg); e != nil {
			log.Errorf("failed to unmarshal config: %v", e)
		}

		if Cfg.Dns == "" {
			Cfg.Dns = buildMySQLDSN(Cfg.Database)
		}

		// validate config
		if err := validate.Struct(Cfg); err != nil {
			if errs, ok := err.(validator.ValidationErrors); ok {
				var sb strings.Builder
				sb.WriteString(fmt.Sprintf("%v Config validation failed:\n", ModuleSetting))

				for _, e := range errs {
					sb.WriteString(
						fmt.Sprintf("  - %s: failed '%s' (value: %v)\n", e.Field(), e.Tag(), e.Value()),
					)
				}

				log.Error(sb.String())
			} else {
				log.Errorf("config validation failed: %v", err)
			}
		}
	})

}
