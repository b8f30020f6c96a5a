package catalogue_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skillforge/skillforge/modules/analytics/catalogue"
	"github.com/skillforge/skillforge/modules/workforce/domain/entities/skill"
)

func TestDefaultCatalogueParses(t *testing.T) {
	c := catalogue.Default()
	require.NotEmpty(t, c.Templates())
	for _, tpl := range c.Templates() {
		require.NotEmpty(t, tpl.Role)
		require.NotEmpty(t, tpl.Requirements)
	}
}

func TestParseValidation(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		_, err := catalogue.Parse([]byte(""))
		require.ErrorIs(t, err, catalogue.ErrEmptyCatalogue)
	})

	t.Run("missing role name", func(t *testing.T) {
		_, err := catalogue.Parse([]byte(`
[[templates]]
advice = ["x"]

[[templates.requirements]]
skill = "Go"
level = 3
`))
		require.ErrorIs(t, err, catalogue.ErrTemplateMissingRole)
	})

	t.Run("no requirements", func(t *testing.T) {
		_, err := catalogue.Parse([]byte(`
[[templates]]
role = "Backend Engineer"
`))
		require.ErrorIs(t, err, catalogue.ErrNoRequirements)
	})

	t.Run("level out of range", func(t *testing.T) {
		_, err := catalogue.Parse([]byte(`
[[templates]]
role = "Backend Engineer"

[[templates.requirements]]
skill = "Go"
level = 9
`))
		require.ErrorIs(t, err, skill.ErrInvalidLevel)
	})
}

func TestParseOrderPreserved(t *testing.T) {
	c, err := catalogue.Parse([]byte(`
[[templates]]
role = "First"

[[templates.requirements]]
skill = "Go"
level = 3

[[templates]]
role = "Second"

[[templates.requirements]]
skill = "SQL"
level = 2
`))
	require.NoError(t, err)
	require.Equal(t, "First", c.Templates()[0].Role)
	require.Equal(t, "Second", c.Templates()[1].Role)
}
