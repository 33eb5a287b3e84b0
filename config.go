package ink

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
)

// Config is the full configuration surface of the pipeline. Both sections
// are plain records that may be partially overridden; unspecified TOML
// keys keep their defaults.
type Config struct {
	Throttle   ThrottleConfig   `toml:"throttle"`
	Correction CorrectionConfig `toml:"correction"`
}

// DefaultConfig returns the documented reference configuration.
func DefaultConfig() Config {
	return Config{
		Throttle:   DefaultThrottleConfig(),
		Correction: DefaultCorrectionConfig(),
	}
}

// LoadConfig reads a TOML configuration file over the defaults, so a
// partial file overrides only the keys it names. When the file does not
// exist, the defaults are written there and returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := SaveConfig(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("ink: decode config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes the configuration as TOML, creating the directory as
// needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ink: create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ink: write config %s: %w", path, err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// WatchConfig watches a configuration file and invokes onChange with the
// freshly loaded configuration whenever the file is written or recreated.
// Parse failures are logged and skipped; the previous configuration stays
// in effect. The returned stop function ends the watch.
//
// The watch is on the containing directory, so editors that replace the
// file rather than writing in place are still observed.
func WatchConfig(path string, onChange func(Config)) (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("ink: config watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("ink: watch %s: %w", filepath.Dir(path), err)
	}

	target := filepath.Clean(path)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := LoadConfig(path)
				if err != nil {
					Logger().Warn("ink: config reload failed", "path", path, "error", err)
					continue
				}
				onChange(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				Logger().Warn("ink: config watcher error", "error", err)
			}
		}
	}()

	return func() {
		close(done)
		watcher.Close()
	}, nil
}
