package internal

import (
	"fmt"
	"time"
)

type Config struct {
	APIBaseURL      string        `env:"API_BASE_URL,required=true"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT,default=10s"`
	LogLevel        string        `env:"LOG_LEVEL,required=true"`
	CensoredWords   []string      `env:"CENSORED_WORDS"`
	CharReplacement string        `env:"CHARACTER_REPLACEMENT,default=*"`
	SyncInterval    time.Duration `env:"SYNC_INTERVAL,default=30s"`
	SummaryInterval time.Duration `env:"SUMMARY_INTERVAL,default=2m"`
	AuthToken       string        `env:"AUTH_TOKEN"`
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
