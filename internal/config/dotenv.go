package config

import (
	"os"

	"github.com/joho/godotenv"
)

// dotenvCandidates in precedence order. godotenv never overwrites variables
// that are already set, so real environment variables always win and
// .env.local wins over .env.
var dotenvCandidates = []string{".env.local", ".env"}

// LoadDotEnv loads the dotenv files present in the working directory and
// returns the names of the ones it applied.
func LoadDotEnv() []string {
	applied := make([]string, 0, len(dotenvCandidates))
	for _, name := range dotenvCandidates {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err == nil {
			applied = append(applied, name)
		}
	}
	return applied
}
