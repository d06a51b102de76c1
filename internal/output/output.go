package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/switcheroo/internal/model"
	"github.com/mj1618/switcheroo/internal/rank"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Out is where Print writes. Tests swap it for a buffer.
var Out io.Writer = os.Stdout

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatYAML, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (use yaml or json)", s)
	}
}

// ListResult is the top-level output of the `list` command.
type ListResult struct {
	Query   string        `yaml:"query,omitempty" json:"query,omitempty"`
	TS      int64         `yaml:"ts"              json:"ts"`
	Windows []rank.Result `yaml:"windows"         json:"windows"`
}

// SpacesResult is the top-level output of the `spaces` command.
type SpacesResult struct {
	Active uint64        `yaml:"active" json:"active"`
	Spaces []model.Space `yaml:"spaces" json:"spaces"`
}

// FocusResult is the output of the `focus` command.
type FocusResult struct {
	OK       bool   `yaml:"ok"              json:"ok"`
	WindowID uint32 `yaml:"window_id"       json:"window_id"`
	App      string `yaml:"app,omitempty"   json:"app,omitempty"`
	Title    string `yaml:"title,omitempty" json:"title,omitempty"`
}

// IconResult is the output of the `icon` command.
type IconResult struct {
	PID    int    `yaml:"pid"    json:"pid"`
	Path   string `yaml:"path"   json:"path"`
	Width  int    `yaml:"width"  json:"width"`
	Height int    `yaml:"height" json:"height"`
}

// Print serializes v to Out in the current output format.
func Print(v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		if PrettyOutput {
			return PrintPrettyJSON(v)
		}
		return PrintJSON(v)
	case FormatYAML:
		return PrintYAML(v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// PrintJSON serializes v to Out as compact single-line JSON.
func PrintJSON(v interface{}) error {
	enc := json.NewEncoder(Out)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintPrettyJSON serializes v to Out as indented JSON.
func PrintPrettyJSON(v interface{}) error {
	enc := json.NewEncoder(Out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintYAML serializes v to Out as YAML.
func PrintYAML(v interface{}) error {
	enc := yaml.NewEncoder(Out)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
