package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	assert.NotEmpty(t, c.All())
}

func TestLookup(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	def := c.Lookup("supino-reto-barra")
	assert.Equal(t, "Supino Reto com Barra", def.Name)
	assert.True(t, c.Has("supino-reto-barra"))

	// Unknown IDs resolve to a placeholder, never an error: logged data
	// may reference definitions removed from a later catalog.
	ghost := c.Lookup("exercicio-removido")
	assert.Equal(t, "exercicio-removido", ghost.ID)
	assert.Equal(t, "Exercício desconhecido", ghost.Name)
	assert.False(t, c.Has("exercicio-removido"))
}

func TestSearch(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	out := c.Search("supino")
	require.NotEmpty(t, out)
	for _, d := range out {
		assert.Contains(t, d.Name, "Supino")
	}

	assert.Empty(t, c.Search("zzz-nada"))
	assert.Len(t, c.Search(""), len(c.All()))
}
