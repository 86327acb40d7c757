package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	QuestionsFile string `env:"QUESTIONS_FILE" envDefault:"questions.csv"`
	GameFile      string `env:"GAME_CONFIG" envDefault:"game.json"`

	AdminUser  string `env:"ADMIN_USER"`
	AdminPass  string `env:"ADMIN_PASS"`
	AdminToken string `env:"ADMIN_TOKEN"`

	ShortDelay  time.Duration `env:"SHORT_DELAY" envDefault:"3s"`
	MediumDelay time.Duration `env:"MEDIUM_DELAY" envDefault:"5s"`
	LongDelay   time.Duration `env:"LONG_DELAY" envDefault:"10s"`

	ExportEnabled bool   `env:"EXPORT_ENABLED" envDefault:"true"`
	ExportFile    string `env:"EXPORT_FILE" envDefault:"./score_table.json"`
}

func FromEnv() (Config, error) {
	return env.ParseAs[Config]()
}
