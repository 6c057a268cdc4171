// Package config loads env-tagged structs with caarlos0/env, after reading an
// optional .env file with godotenv.
//
// Each binary declares its own struct and embeds shared blocks such as
// httpserver.Config or seedstore.Config:
//
//	type appConfig struct {
//		PrivateKeyPath string `env:"PRIVATE_KEY_PATH" envDefault:"student_private.pem"`
//		HTTP           httpserver.Config
//		Seed           seedstore.Config
//	}
//
//	var cfg appConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Values are cached per type; Reload re-reads the environment for one type.
package config
