// Package config loads runtime configuration from the environment, with an
// optional .env file for local development. API keys only ever live here
// and in outbound Authorization headers; they are never written to the
// transcript or the logs.
package config
