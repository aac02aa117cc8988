package attribution

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeManifest(t *testing.T) {
	const payload = `
version: 1
name: outreach-pack
widgets:
  - definition:
      code: outreach.widget.deliverability
      name: Deliverability Heatmap
      description: Bounce rate per inbox provider and day.
      category: outreach
      schema:
        type: object
        properties:
          provider:
            type: string
    provider:
      name: Deliverability Provider
      summary: Folds bounce counts into a heatmap grid.
      entry: github.com/example/outreach.Provider
      package: github.com/example/outreach
      docs_url: https://example.com/widgets/deliverability
      capabilities: ["html","json"]
`
	doc, err := DecodeManifest(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, doc.Widgets, 1)

	widget := doc.Widgets[0]
	assert.Equal(t, "outreach.widget.deliverability", widget.Definition.Code)
	assert.Equal(t, "Deliverability Heatmap", widget.Definition.Name)
	assert.Equal(t, "Deliverability Provider", widget.Provider.Name)
	assert.Equal(t, "github.com/example/outreach.Provider", widget.Provider.Entry)
	assert.Equal(t, "outreach", widget.Definition.Category)
}

func TestRegistryLoadManifestDocument(t *testing.T) {
	doc := &WidgetManifestDocument{
		Version: manifestVersionV1,
		Widgets: []ManifestWidget{
			{
				Definition: WidgetDefinition{
					Code: "acme.widget.sequences",
					Name: "Sequences",
				},
				Provider: ManifestProvider{
					Name:    "Sequence Provider",
					Summary: "Fetches outreach sequence stats",
					Entry:   "github.com/acme/widgets.NewSequenceProvider",
				},
			},
		},
	}
	reg := NewRegistry()

	err := reg.LoadManifestDocument(doc)
	require.NoError(t, err)

	def, ok := reg.Definition("acme.widget.sequences")
	require.True(t, ok)
	assert.Equal(t, "Sequences", def.Name)

	meta, ok := reg.ProviderMetadata("acme.widget.sequences")
	require.True(t, ok)
	assert.Equal(t, "Sequence Provider", meta.Name)
	assert.Equal(t, "github.com/acme/widgets.NewSequenceProvider", meta.Entry)
}

func TestManifestDuplicateCodes(t *testing.T) {
	const payload = `
widgets:
  - definition:
      code: dup.widget
      name: First
  - definition:
      code: dup.widget
      name: Second
`
	_, err := DecodeManifest(strings.NewReader(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicates widget code")
}

func TestManifestRequiresNamedWidgets(t *testing.T) {
	const payload = `
widgets:
  - definition:
      code: nameless.widget
`
	_, err := DecodeManifest(strings.NewReader(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing definition.name")
}
