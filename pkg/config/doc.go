// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
//	type AppConfig struct {
//	    Port   int    `env:"PORT" envDefault:"8080"`
//	    APIURL string `env:"VALIDATE_API_URL"`
//	}
//
//	cfg := config.MustLoad[AppConfig]()
package config
