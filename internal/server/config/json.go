package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/cvpro/internal/flagx"
	"github.com/dmitrijs2005/cvpro/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "15m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config
// struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddrHTTP             string         `json:"endpoint_addr_http"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	S3RootUser                   string         `json:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
	PriceCV                      int64          `json:"price_cv"`
	PriceCover                   int64          `json:"price_cover"`
	PriceBundle                  int64          `json:"price_bundle"`
	Currency                     string         `json:"currency"`
	AdminEmails                  string         `json:"admin_emails"`
	AdminSubjects                string         `json:"admin_subjects"`
	GeminiAPIKey                 string         `json:"gemini_api_key"`
	GeminiModel                  string         `json:"gemini_model"`
	SuggestionsEnabled           *bool          `json:"suggestions_enabled"`
	SuggestionRateLimit          int            `json:"suggestion_rate_limit"`
	SuggestionRateWindow         timex.Duration `json:"suggestion_rate_window"`
	MaxSnapshotBytes             int64          `json:"max_snapshot_bytes"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The lookup order for the JSON file path is:
//
//	The -c or -config command-line flags.
//	If it is not set, no JSON file is loaded.
//
// If the file path is found, parseJson attempts to read and unmarshal it
// into a JsonConfig. The resulting values are copied into the target Config.
// If the file cannot be read or contains invalid JSON, the function panics.
//
// Unset JSON fields keep their defaults so a partial overlay file is fine.
func parseJson(config *Config) {

	// try flags
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

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	}
	if c.RefreshTokenValidityDuration.Duration != 0 {
		config.RefreshTokenValidityDuration = time.Duration(c.RefreshTokenValidityDuration.Duration)
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
	if c.PriceCV != 0 {
		config.Prices.CV = c.PriceCV
	}
	if c.PriceCover != 0 {
		config.Prices.Cover = c.PriceCover
	}
	if c.PriceBundle != 0 {
		config.Prices.Bundle = c.PriceBundle
	}
	if c.Currency != "" {
		config.Prices.Currency = c.Currency
	}
	if c.AdminEmails != "" {
		config.AdminEmails = splitList(c.AdminEmails)
	}
	if c.AdminSubjects != "" {
		config.AdminSubjects = splitList(c.AdminSubjects)
	}
	if c.GeminiAPIKey != "" {
		config.GeminiAPIKey = c.GeminiAPIKey
	}
	if c.GeminiModel != "" {
		config.GeminiModel = c.GeminiModel
	}
	if c.SuggestionsEnabled != nil {
		config.SuggestionsEnabled = *c.SuggestionsEnabled
	}
	if c.SuggestionRateLimit != 0 {
		config.SuggestionRateLimit = c.SuggestionRateLimit
	}
	if c.SuggestionRateWindow.Duration != 0 {
		config.SuggestionRateWindow = time.Duration(c.SuggestionRateWindow.Duration)
	}
	if c.MaxSnapshotBytes != 0 {
		config.MaxSnapshotBytes = c.MaxSnapshotBytes
	}
}
