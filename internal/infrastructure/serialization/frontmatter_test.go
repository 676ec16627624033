package serialization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `yaml:"name"`
	Items []string `yaml:"items"`
}

func TestFrontmatterRoundTrip(t *testing.T) {
	data, err := SerializeFrontmatter(sample{Name: "board", Items: []string{"a", "b"}}, "# Body\n\ntext")
	require.NoError(t, err)

	doc, err := ParseFrontmatter(data)
	require.NoError(t, err)
	assert.True(t, doc.HasFrontmatter())
	assert.Equal(t, "# Body\n\ntext", doc.Content)

	var got sample
	require.NoError(t, doc.Decode(&got))
	assert.Equal(t, "board", got.Name)
	assert.Equal(t, []string{"a", "b"}, got.Items)
}

func TestParseWithoutFrontmatter(t *testing.T) {
	doc, err := ParseFrontmatter([]byte("just text\n"))
	require.NoError(t, err)
	assert.False(t, doc.HasFrontmatter())
	assert.Equal(t, "just text\n", doc.Content)
	assert.Error(t, doc.Decode(&sample{}))
}

func TestParseEmpty(t *testing.T) {
	doc, err := ParseFrontmatter(nil)
	require.NoError(t, err)
	assert.False(t, doc.HasFrontmatter())
	assert.Empty(t, doc.Content)
}

func TestParseUnterminated(t *testing.T) {
	_, err := ParseFrontmatter([]byte("---\nname: x\n"))
	assert.Error(t, err)
}

func TestDecodeInvalidYAML(t *testing.T) {
	doc, err := ParseFrontmatter([]byte("---\nname: [\n---\n"))
	require.NoError(t, err)
	assert.Error(t, doc.Decode(&sample{}))
}
