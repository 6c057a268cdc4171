package config

import "errors"

var (
	ErrNilPointer      = errors.New("config: nil destination")
	ErrParsingConfig   = errors.New("config: cannot parse environment")
	ErrConfigNotLoaded = errors.New("config: value not loaded")
	ErrLoadingEnvFile  = errors.New("config: cannot read env file")
)
