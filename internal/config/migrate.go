package config

import "fmt"

// migrate upgrades a config from its current version to CurrentVersion.
// Each migration function transforms the config one version forward.
func migrate(cfg *Config) error {
	if cfg.Version == CurrentVersion {
		return nil
	}
	if cfg.Version > CurrentVersion {
		return fmt.Errorf(
			"%w: config version %d is newer than supported version %d (upgrade taskboard)",
			ErrInvalid, cfg.Version, CurrentVersion,
		)
	}
	if cfg.Version < 1 {
		return fmt.Errorf("%w: config version %d is invalid", ErrInvalid, cfg.Version)
	}

	for cfg.Version < CurrentVersion {
		fn, ok := migrations[cfg.Version]
		if !ok {
			return fmt.Errorf("%w: no migration path from version %d", ErrInvalid, cfg.Version)
		}
		fn(cfg)
	}
	return nil
}

// migrations maps each version to the function that migrates it to the next version.
// The migration function must increment cfg.Version.
var migrations = map[int]func(*Config){
	1: migrateV1ToV2,
}

// migrateV1ToV2 adds defaults.group_by, defaults.tag_color, defaults.author
// and the log section.
func migrateV1ToV2(cfg *Config) {
	if cfg.Defaults.GroupBy == "" {
		cfg.Defaults.GroupBy = DefaultGroupBy
	}
	if cfg.Defaults.Status == "" {
		cfg.Defaults.Status = DefaultStatus
	}
	if cfg.Defaults.Priority == "" {
		cfg.Defaults.Priority = DefaultPriority
	}
	if cfg.Defaults.TagColor == "" {
		cfg.Defaults.TagColor = DefaultTagColor
	}
	if cfg.Defaults.Author == "" {
		cfg.Defaults.Author = DefaultAuthor
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	cfg.Version = 2
}
