package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required when storage.backend is %q", BackendPostgres)
		}
	case BackendFile:
		if c.Storage.FilePath == "" {
			return fmt.Errorf("storage.file_path is required when storage.backend is %q", BackendFile)
		}
	default:
		return fmt.Errorf("storage.backend must be %q or %q (got %q)", BackendPostgres, BackendFile, c.Storage.Backend)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Coach.MaxTokens <= 0 {
		return fmt.Errorf("coach.max_tokens must be > 0 (got %d)", c.Coach.MaxTokens)
	}
	if c.Coach.MaxHistory < 0 {
		return fmt.Errorf("coach.max_history must be >= 0 (got %d)", c.Coach.MaxHistory)
	}

	return nil
}
