package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that pre-seed credentials. Anything missing here is
// prompted for interactively.
const (
	EnvKaistID     = "OTL2EVT_KAIST_ID"
	EnvEverytimeID = "OTL2EVT_EVERYTIME_ID"
	EnvEverytimePW = "OTL2EVT_EVERYTIME_PW"
)

// Credentials are the three secrets a migration needs, possibly partial.
type Credentials struct {
	KaistID     string
	EverytimeID string
	EverytimePW string
}

// CredentialsFromEnv loads a .env file if one sits in the working directory
// and reads whatever credentials the environment provides.
func CredentialsFromEnv() Credentials {
	// A missing .env is the normal case, not an error.
	_ = godotenv.Load(".env")

	return Credentials{
		KaistID:     os.Getenv(EnvKaistID),
		EverytimeID: os.Getenv(EnvEverytimeID),
		EverytimePW: os.Getenv(EnvEverytimePW),
	}
}

// Complete reports whether every credential is present.
func (c Credentials) Complete() bool {
	return c.KaistID != "" && c.EverytimeID != "" && c.EverytimePW != ""
}
