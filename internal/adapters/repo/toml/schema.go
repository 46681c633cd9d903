package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int            `toml:"version"`
	Games   []recordSchema `toml:"games"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported records schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type recordSchema struct {
	ID         string  `toml:"id"`
	Username   string  `toml:"username"`
	FinalScore int     `toml:"final_score"`
	Turns      int     `toml:"turns"`
	Efficacy   float64 `toml:"efficacy"`
	Result     string  `toml:"result"`
	PlayedAt   string  `toml:"played_at"`
}
