package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Database struct {
		URL            string `env:"DATABASE_URL,required"`
		MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`
	}

	Redis struct {
		Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Telegram struct {
		BotToken string `env:"BOT_TOKEN,required"`
	}

	Chain struct {
		RPCURL        string `env:"ETH_RPC_URL" envDefault:"https://eth.llamarpc.com"`
		TokenContract string `env:"TOKEN_CONTRACT" envDefault:"0x64A77C6B07C9F0a0fB09d29A2a68A0Ae9a0BbB4f"`
		TokenDecimals int    `env:"TOKEN_DECIMALS" envDefault:"18"`
		Threshold     int64  `env:"ELIGIBILITY_THRESHOLD" envDefault:"250000"`
	}

	GenAI struct {
		APIKey string `env:"GEMINI_API_KEY,required"`
		Model  string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	}

	Auth struct {
		JWTSecret string        `env:"JWT_SECRET,required"`
		TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	}
}

// Load reads configuration from the environment. A .env file is applied
// first when present; in production the variables are set directly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
