package internal

import (
	"fmt"
	"time"
)

type Config struct {
	Host           string        `env:"HOST,default=0.0.0.0"`
	Port           int           `env:"PORT,default=8080"`
	LogLevel       string        `env:"LOG_LEVEL,default=info"`
	SendBufferSize int           `env:"SEND_BUFFER_SIZE,default=64"`
	QuipURL        string        `env:"QUIP_URL,default=https://icanhazdadjoke.com/"`
	QuipTimeout    time.Duration `env:"QUIP_TIMEOUT,default=5s"`
	CensoredChar   string        `env:"CHARACTER_REPLACEMENT,default=*"`
}

// CharacterRune validates that the configured replacement is exactly
// one character wide.
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
