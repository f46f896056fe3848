package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Astemirdum/book-exchange/pkg/auth"
	"github.com/Astemirdum/book-exchange/pkg/kafka"
	"github.com/Astemirdum/book-exchange/pkg/logger"
	"github.com/Astemirdum/book-exchange/pkg/postgres"
	"github.com/Astemirdum/book-exchange/pkg/telemetry"
	"github.com/kelseyhightower/envconfig"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"EXCHANGE_HTTP_HOST"`
	Port         string        `yaml:"port" envconfig:"EXCHANGE_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration
}

const (
	ValuationModeLocal = "local"
	ValuationModeHTTP  = "http"
)

type Valuation struct {
	Mode    string        `envconfig:"VALUATION_MODE" default:"local"`
	BaseURL string        `envconfig:"VALUATION_BASE_URL"`
	Timeout time.Duration `envconfig:"VALUATION_TIMEOUT" default:"3s"`
}

type Sweep struct {
	Enabled bool   `envconfig:"EXCHANGE_SWEEP_ENABLED" default:"true"`
	Spec    string `envconfig:"EXCHANGE_SWEEP_SPEC" default:"@every 1m"`
}

type Config struct {
	Server    HTTPServer  `yaml:"server"`
	Database  postgres.DB `yaml:"db"`
	Kafka     kafka.Config
	Auth      auth.Config
	Valuation Valuation
	Sweep     Sweep
	Telemetry telemetry.Config
	Log       logger.Log `yaml:"log"`
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
