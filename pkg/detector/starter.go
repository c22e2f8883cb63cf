package detector

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/notemap/pkg/config"
)

// SuggestedCategory names the starter category built from keyword suggestions.
const SuggestedCategory = "Suggested"

// ErrConfigExists is returned when a starter config would overwrite a file.
var ErrConfigExists = errors.New("config file already exists")

// StarterConfig builds a configuration from the default one, appending a
// category made of the profile's keyword suggestions when there are any.
func (p *Profile) StarterConfig() *config.Config {
	cfg := config.DefaultConfig()

	if len(p.Suggestions) > 0 {
		keywords := make([]string, 0, len(p.Suggestions))
		for _, s := range p.Suggestions {
			keywords = append(keywords, s.Token)
		}
		cfg.Categories = append(cfg.Categories, config.CategoryConfig{
			Name:        SuggestedCategory,
			Keywords:    keywords,
			Description: "Frequent words among uncategorized lines; rename or split",
		})
	}

	return cfg
}

// MarshalStarterConfig renders the starter configuration as commented YAML.
func (p *Profile) MarshalStarterConfig(source string) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# NoteMap configuration\n")
	fmt.Fprintf(&buf, "# Generated by: notemap detect %s\n", source)
	fmt.Fprintf(&buf, "# Indentation: %s", p.Style)
	if p.IndentUnit > 0 {
		fmt.Fprintf(&buf, " (unit %d)", p.IndentUnit)
	}
	fmt.Fprintf(&buf, ", max level %d\n", p.MaxLevel)
	fmt.Fprintf(&buf, "# Uncategorized: %d of %d sampled lines\n\n", p.Uncategorized(), p.SampledLines)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p.StarterConfig()); err != nil {
		return nil, fmt.Errorf("encoding starter config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding starter config: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteStarterConfig writes the starter configuration to path. It never
// overwrites an existing file.
func (p *Profile) WriteStarterConfig(path, source string) error {
	data, err := p.MarshalStarterConfig(source)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644) // #nosec G302 G304 -- user-chosen config path
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s (will not overwrite)", ErrConfigExists, path)
		}
		return fmt.Errorf("creating config file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing config file: %w", err)
	}
	return f.Close()
}
