package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/viant/commander/service/dao/blocklist"
	"gopkg.in/yaml.v3"
)

// Format identifies a document encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf infers the document format from the URL extension, JSON by default
func FormatOf(URL string) Format {
	switch strings.ToLower(path.Ext(URL)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

func encode(format Format, document *blocklist.Document) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(document)
	case FormatTOML:
		buffer := &bytes.Buffer{}
		if err := toml.NewEncoder(buffer).Encode(document); err != nil {
			return nil, err
		}
		return buffer.Bytes(), nil
	default:
		return json.MarshalIndent(document, "", "  ")
	}
}

func decode(format Format, data []byte) (*blocklist.Document, error) {
	document := &blocklist.Document{}
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, document)
	case FormatTOML:
		err = toml.Unmarshal(data, document)
	default:
		err = json.Unmarshal(data, document)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %v blocklist: %w", format, err)
	}
	return document, nil
}
