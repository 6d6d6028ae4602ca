package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"
)

// ConfigError reports a malformed pipeline declaration. It aborts a run
// before any hook executes.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid pipeline configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid pipeline configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

var (
	validatorOnce sync.Once
	validator     *Validator
	validatorErr  error
)

func sharedValidator() (*Validator, error) {
	validatorOnce.Do(func() {
		validator, validatorErr = NewValidator()
	})
	return validator, validatorErr
}

// Load reads and validates a pipeline declaration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	cfg, err := LoadBytes(data)
	if err != nil {
		if ce, ok := err.(*ConfigError); ok {
			ce.Path = path
			return nil, ce
		}
		return nil, &ConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

// LoadBytes decodes and validates a pipeline declaration. Unknown YAML keys
// are rejected, then the decoded value is checked against the embedded
// schema and the semantic rules the schema cannot express.
func LoadBytes(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("parse YAML: %w", err)}
	}

	v, err := sharedValidator()
	if err != nil {
		return nil, err
	}
	if err := v.Validate(&cfg); err != nil {
		return nil, &ConfigError{Err: err}
	}

	if err := validateSemantics(&cfg); err != nil {
		return nil, &ConfigError{Err: err}
	}

	return &cfg, nil
}

func validateSemantics(cfg *Config) error {
	if err := checkRegex("files", cfg.Files); err != nil {
		return err
	}
	if err := checkRegex("exclude", cfg.Exclude); err != nil {
		return err
	}

	for ri, repo := range cfg.Repos {
		seen := make(map[string]struct{})
		for hi, hook := range repo.Hooks {
			at := fmt.Sprintf("repos[%d].hooks[%d] (%s)", ri, hi, hook.ID)

			// The same id may appear twice in one source only under distinct
			// names; otherwise the two entries are indistinguishable in
			// reports.
			key := hook.ID + "\x00" + hook.DisplayName()
			if _, dup := seen[key]; dup {
				return fmt.Errorf("%s: duplicate hook id %q (give one a distinct name)", at, hook.ID)
			}
			seen[key] = struct{}{}

			if repo.IsLocal() {
				if hook.Entry == "" {
					return fmt.Errorf("%s: local hooks require entry", at)
				}
				if hook.Language == "" {
					return fmt.Errorf("%s: local hooks require language", at)
				}
			}

			if err := checkRegex(at+".files", hook.Files); err != nil {
				return err
			}
			if err := checkRegex(at+".exclude", hook.Exclude); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkRegex(field, pattern string) error {
	if pattern == "" {
		return nil
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return fmt.Errorf("%s: invalid regex %q: %v", field, pattern, err)
	}
	return nil
}
