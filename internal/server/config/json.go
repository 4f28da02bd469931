package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/webident/authcore/internal/flagx"
	"github.com/webident/authcore/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "1h" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr        string         `json:"endpoint_addr"`
	DatabaseDSN         string         `json:"database_dsn"`
	AuthTokenSecret     string         `json:"auth_token_secret"`
	UserDataTokenSecret string         `json:"user_data_token_secret"`
	AuthTokenTTL        timex.Duration `json:"auth_token_ttl"`
	ResetTokenTTL       timex.Duration `json:"reset_token_ttl"`
	SMTPHost            string         `json:"smtp_host"`
	SMTPPort            int            `json:"smtp_port"`
	SMTPUser            string         `json:"smtp_user"`
	SMTPPassword        string         `json:"smtp_password"`
	MailFrom            string         `json:"mail_from"`
	ClientBaseURL       string         `json:"client_base_url"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.AuthTokenSecret = c.AuthTokenSecret
	config.UserDataTokenSecret = c.UserDataTokenSecret
	config.AuthTokenTTL = time.Duration(c.AuthTokenTTL.Duration)
	config.ResetTokenTTL = time.Duration(c.ResetTokenTTL.Duration)
	config.SMTPHost = c.SMTPHost
	config.SMTPPort = c.SMTPPort
	config.SMTPUser = c.SMTPUser
	config.SMTPPassword = c.SMTPPassword
	config.MailFrom = c.MailFrom
	config.ClientBaseURL = c.ClientBaseURL
}
