package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type entry struct {
	once  sync.Once
	value any
	err   error
}

var (
	dotenvOnce sync.Once
	// loaded caches one parsed value (or parse error) per config type.
	loaded sync.Map
)

// Load fills v from the environment. The first call also reads ".env" from
// the working directory when present. Each type is parsed once; later calls
// copy the cached value, or return the cached error.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() { _ = godotenv.Load() })

	actual, _ := loaded.LoadOrStore(reflect.TypeFor[T](), &entry{})
	e := actual.(*entry)
	e.once.Do(func() {
		var cfg T
		if err := env.Parse(&cfg); err != nil {
			e.err = errors.Join(ErrParsingConfig, err)
			return
		}
		e.value = cfg
	})

	if e.err != nil {
		return e.err
	}
	cfg, ok := e.value.(T)
	if !ok {
		return ErrConfigNotLoaded
	}
	*v = cfg
	return nil
}

// MustLoad is Load for configuration a binary cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// Reload drops the cached value for T and parses the environment again.
func Reload[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	loaded.Delete(reflect.TypeFor[T]())
	return Load(v)
}

// ResetCache forgets every parsed type.
func ResetCache() {
	loaded.Clear()
}

// LoadEnv copies variables from the given files into the process
// environment, ".env" when no path is given. Variables already set are kept,
// so earlier files win over later ones.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}
