// Package config resolves runtime settings for the user API from environment
// variables, falling back to hardcoded defaults.
package config

import "github.com/caarlos0/env/v10"

// Config holds runtime settings for the user API Lambda.
//
// Fields:
//   - UserTable: DynamoDB table holding user records, keyed by email.
//   - CognitoRegion / CognitoUserPoolID: identity directory settings.
//   - EndpointURL: optional base endpoint for the DynamoDB client, used to
//     target DynamoDB Local during development.
//   - AccessKeyID / SecretAccessKey: static credentials paired with
//     EndpointURL; ignored when empty so the default provider chain applies.
type Config struct {
	UserTable         string `env:"USER_TABLE" envDefault:"user"`
	CognitoRegion     string `env:"COGNITO_REGION" envDefault:"us-east-1"`
	CognitoUserPoolID string `env:"COGNITO_USER_POOL_ID" envDefault:"us-east-1_zHG6ezXPp"`

	EndpointURL     string `env:"DYNAMO_ENDPOINT_URL"`
	AccessKeyID     string `env:"DYNAMO_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"DYNAMO_SECRET_ACCESS_KEY"`
}

// LoadConfig builds a Config from the process environment, applying the
// envDefault values where a variable is unset.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
