package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCardDispatch(t *testing.T) {
	card, err := DecodeCard(json.RawMessage(`{
		"type": "contact",
		"email": "a@b.com",
		"location": "Berlin",
		"socialLinks": [{"platform": "GitHub", "url": "https://github.com/example"}]
	}`))
	require.NoError(t, err)

	contact, ok := card.(ContactCard)
	require.True(t, ok)
	assert.Equal(t, "a@b.com", contact.Email)
	assert.Equal(t, "Berlin", contact.Location)
	assert.Len(t, contact.SocialLinks, 1)
}

func TestDecodeCardProject(t *testing.T) {
	card, err := DecodeCard(json.RawMessage(`{
		"type": "project",
		"title": "Chat Widget",
		"description": "Embeddable chat widget",
		"year": 2024,
		"technologies": ["Go"],
		"links": []
	}`))
	require.NoError(t, err)

	project, ok := card.(ProjectCard)
	require.True(t, ok)
	assert.Equal(t, "Chat Widget", project.Title)
	assert.Equal(t, 2024, project.Year)
	assert.Equal(t, CardTypeProject, project.CardType())
}

func TestDecodeCardUnknownType(t *testing.T) {
	_, err := DecodeCard(json.RawMessage(`{"type": "banner"}`))
	assert.ErrorContains(t, err, `unknown type "banner"`)
}

func TestDecodeCardMissingType(t *testing.T) {
	_, err := DecodeCard(json.RawMessage(`{"title": "x"}`))
	assert.ErrorContains(t, err, "missing type discriminant")
}

func TestDecodeCardInvalidJSON(t *testing.T) {
	_, err := DecodeCard(json.RawMessage(`{`))
	assert.Error(t, err)
}
