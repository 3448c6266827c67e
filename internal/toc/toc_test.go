package toc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_TurkishHeadings_BuildsForest(t *testing.T) {
	body := []byte("# Giriş\n\ntext\n\n## Alt Bölüm\n\nmore\n\n# Sonuç\n")

	forest := Extract(body)
	require.Len(t, forest, 2)

	assert.Equal(t, "Giriş", forest[0].Title)
	assert.Equal(t, 1, forest[0].Level)
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, "Alt Bölüm", forest[0].Children[0].Title)
	assert.Equal(t, 2, forest[0].Children[0].Level)

	assert.Equal(t, "Sonuç", forest[1].Title)
	assert.Empty(t, forest[1].Children)

	ids := map[string]bool{}
	var collect func(nodes []*Node)
	collect = func(nodes []*Node) {
		for _, n := range nodes {
			assert.False(t, ids[n.ID], "duplicate id %q", n.ID)
			ids[n.ID] = true
			collect(n.Children)
		}
	}
	collect(forest)
}

func TestExtract_LevelJump_NestsUnderNearestOpenAncestor(t *testing.T) {
	body := []byte("# Top\n\n#### Deep\n\n## Mid\n")

	forest := Extract(body)
	require.Len(t, forest, 1)
	require.Len(t, forest[0].Children, 2)
	// No synthetic H2/H3 nodes are invented for the H4.
	assert.Equal(t, "Deep", forest[0].Children[0].Title)
	assert.Equal(t, 4, forest[0].Children[0].Level)
	assert.Equal(t, "Mid", forest[0].Children[1].Title)
}

func TestExtract_DuplicateTitles_GetUniqueIDs(t *testing.T) {
	body := []byte("## Özellikler\n\n## Özellikler\n\n## Özellikler\n")

	forest := Extract(body)
	require.Len(t, forest, 3)
	assert.Equal(t, "özellikler", forest[0].ID)
	assert.Equal(t, "özellikler-2", forest[1].ID)
	assert.Equal(t, "özellikler-3", forest[2].ID)
}

func TestExtract_NoHeadings_ReturnsEmptyForest(t *testing.T) {
	forest := Extract([]byte("just a paragraph\n\nand another\n"))
	assert.Empty(t, forest)
}

func TestExtract_FormattedHeading_StripsInlineMarkup(t *testing.T) {
	forest := Extract([]byte("# The *Slims* Line\n"))
	require.Len(t, forest, 1)
	assert.Equal(t, "The Slims Line", forest[0].Title)
	assert.Equal(t, "the-slims-line", forest[0].ID)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello-world", Slugify("Hello, World!"))
	assert.Equal(t, "giriş", Slugify("Giriş"))
	assert.Equal(t, "a-b", Slugify("  a -- b  "))
	assert.Equal(t, "", Slugify("!!!"))
}
