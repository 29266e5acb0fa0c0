package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// fileHeader opens every written config file. The schema directive lets
// TOML language servers pick up the schema written by `config schema -w`.
const fileHeader = "# pageflip configuration\n#:schema ./" + schemaFileName + "\n\n"

// WriteConfig validates cfg and writes it to path as TOML. Tables follow the
// field order of Config and nested tables are indented under their parent.
// The file is replaced by rename so the watcher never reloads a partial
// write.
func WriteConfig(cfg *Config, path string) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("refusing to write invalid config: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return replaceFile(path, buf.Bytes())
}

func replaceFile(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp config file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err = tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set config file mode: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync config file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close config file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}
