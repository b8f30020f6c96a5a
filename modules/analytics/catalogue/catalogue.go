// Package catalogue holds the growth-path role templates. The catalogue is
// plain configuration: the matching algorithm in the growth service stays
// independent of its contents, and hosts may swap the embedded default for
// their own TOML file at startup.
package catalogue

import (
	_ "embed"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-faster/errors"

	"github.com/skillforge/skillforge/modules/workforce/domain/entities/skill"
)

//go:embed templates.toml
var defaultTemplates []byte

var (
	ErrEmptyCatalogue      = errors.New("catalogue has no templates")
	ErrTemplateMissingRole = errors.New("catalogue template missing role name")
	ErrNoRequirements      = errors.New("catalogue template has no requirements")
)

// Requirement targets a skill by name; templates are workspace-independent
// so they cannot reference skill ids.
type Requirement struct {
	Skill string `toml:"skill"`
	Level int    `toml:"level"`
}

// Template is one target role: ordered requirements plus recommendation
// boilerplate emitted with every suggestion for this role.
type Template struct {
	Role         string        `toml:"role"`
	Advice       []string      `toml:"advice"`
	Requirements []Requirement `toml:"requirements"`
}

type Catalogue struct {
	templates []Template
}

func (c *Catalogue) Templates() []Template {
	return c.templates
}

type document struct {
	Templates []Template `toml:"templates"`
}

// Parse decodes and validates a TOML catalogue document.
func Parse(data []byte) (*Catalogue, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode catalogue")
	}
	if len(doc.Templates) == 0 {
		return nil, ErrEmptyCatalogue
	}
	for _, t := range doc.Templates {
		if t.Role == "" {
			return nil, ErrTemplateMissingRole
		}
		if len(t.Requirements) == 0 {
			return nil, errors.Wrap(ErrNoRequirements, t.Role)
		}
		for _, r := range t.Requirements {
			if r.Level < skill.MinLevel || r.Level > skill.MaxLevel {
				return nil, errors.Wrapf(skill.ErrInvalidLevel, "%s/%s", t.Role, r.Skill)
			}
		}
	}
	return &Catalogue{templates: doc.Templates}, nil
}

// Load reads a catalogue override from disk.
func Load(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read catalogue")
	}
	return Parse(data)
}

// Default returns the embedded catalogue. The embedded document is part of
// the build, so a decode failure here is a programming error.
func Default() *Catalogue {
	c, err := Parse(defaultTemplates)
	if err != nil {
		panic(err)
	}
	return c
}
