package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rivalrockets/rivalrockets/internal/flagx"
	"github.com/rivalrockets/rivalrockets/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which
// allows parsing both string values such as "1h" and integer
// nanoseconds. This struct is an intermediate DTO used only for
// reading JSON configuration files; after unmarshalling, its fields
// are copied into the runtime Config struct.
type JsonConfig struct {
	EndpointAddrHTTP           string         `json:"endpoint_addr_http"`
	ExternalBaseURL            string         `json:"external_base_url"`
	DatabaseDSN                string         `json:"database_dsn"`
	SecretKey                  string         `json:"secret_key"`
	AdminEmail                 string         `json:"admin_email"`
	AuthTokenValidityDuration  timex.Duration `json:"auth_token_validity_duration"`
	EmailTokenValidityDuration timex.Duration `json:"email_token_validity_duration"`
	MachinesPerPage            int            `json:"machines_per_page"`
	RevisionsPerPage           int            `json:"revisions_per_page"`
	CommentsPerPage            int            `json:"comments_per_page"`
}

// parseJson loads configuration values from a JSON file into the
// provided Config instance. The file path comes from the -c or
// -config command-line flags; when neither is set, no JSON file is
// loaded. If the file cannot be read or contains invalid JSON, the
// function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.ExternalBaseURL = c.ExternalBaseURL
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.AdminEmail = c.AdminEmail
	config.AuthTokenValidityDuration = time.Duration(c.AuthTokenValidityDuration.Duration)
	config.EmailTokenValidityDuration = time.Duration(c.EmailTokenValidityDuration.Duration)
	config.MachinesPerPage = c.MachinesPerPage
	config.RevisionsPerPage = c.RevisionsPerPage
	config.CommentsPerPage = c.CommentsPerPage
}
