package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

const schemaFileName = "config.schema.json"

// GenerateSchema returns the JSON schema of the config file.
func GenerateSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&Config{})

	schema.ID = "https://github.com/bnema/pageflip/config.schema.json"
	schema.Title = "pageflip configuration"
	schema.Description = "Configuration schema for pageflip, a page-flipping stereoscopic output"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// GenerateSchemaFile writes the schema next to the config file and returns
// its path.
func GenerateSchemaFile() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	data, err := GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaFile := filepath.Join(configDir, schemaFileName)
	if err := os.WriteFile(schemaFile, data, filePerm); err != nil {
		return "", fmt.Errorf("failed to write schema file: %w", err)
	}
	return schemaFile, nil
}
