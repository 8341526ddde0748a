package pack

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	MetaVersion  = 1
	DefaultHost  = "https://github.com/waterdev/owoifier"
	ManifestName = "meta.json"
)

type EmojiData struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Aliases  []string `json:"aliases"`
}

type Emoji struct {
	Downloaded bool      `json:"downloaded"`
	FileName   string    `json:"fileName"`
	Emoji      EmojiData `json:"emoji"`
}

type Manifest struct {
	MetaVersion int     `json:"metaVersion"`
	Host        string  `json:"host"`
	ExportedAt  string  `json:"exportedAt"`
	Emojis      []Emoji `json:"emojis"`
}

func WriteManifest(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &m, nil
}
