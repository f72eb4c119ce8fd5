package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

var validPayloads = map[string]string{
	"project": `{
		"type": "project",
		"title": "Chat Widget",
		"description": "Embeddable chat widget",
		"year": 2024,
		"technologies": ["Go", "TypeScript"],
		"links": [{"label": "GitHub", "url": "https://github.com/example/chat"}]
	}`,
	"skill": `{
		"type": "skill",
		"category": "Backend",
		"skills": ["Go", "PostgreSQL"]
	}`,
	"contact": `{
		"type": "contact",
		"email": "a@b.com",
		"location": "Berlin",
		"socialLinks": [{"platform": "GitHub", "url": "https://github.com/example"}]
	}`,
	"resume": `{
		"type": "resume",
		"name": "resume.pdf",
		"title": "Software Engineer",
		"format": "PDF",
		"updatedDate": "2024-06-01",
		"size": "120 KB"
	}`,
	"info": `{
		"type": "info",
		"title": "About me",
		"content": "I build backends."
	}`,
}

func TestValidateAcceptsEveryVariant(t *testing.T) {
	for cardType, payload := range validPayloads {
		t.Run(cardType, func(t *testing.T) {
			assert.NoError(t, Validate(json.RawMessage(payload)))
		})
	}
}

func TestValidateRejectsMissingRequiredField(t *testing.T) {
	// Drop one required field from each variant
	missing := map[string]string{
		"project": `{"type": "project", "description": "x", "year": 2024, "technologies": [], "links": []}`,
		"skill":   `{"type": "skill", "category": "Backend"}`,
		"contact": `{"type": "contact", "email": "a@b.com", "socialLinks": []}`,
		"resume":  `{"type": "resume", "name": "resume.pdf", "title": "SE", "format": "PDF", "size": "120 KB"}`,
		"info":    `{"type": "info", "title": "About me"}`,
	}

	for cardType, payload := range missing {
		t.Run(cardType, func(t *testing.T) {
			assert.Error(t, Validate(json.RawMessage(payload)))
		})
	}
}

func TestValidateRejectsUnknownDiscriminant(t *testing.T) {
	err := Validate(json.RawMessage(`{"type": "banner", "title": "x"}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown structured output type")
}

func TestValidateRejectsMissingDiscriminant(t *testing.T) {
	err := Validate(json.RawMessage(`{"title": "x", "content": "y"}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing the type discriminant")
}

func TestValidateRejectsWrongFieldType(t *testing.T) {
	err := Validate(json.RawMessage(`{
		"type": "project",
		"title": "Chat Widget",
		"description": "x",
		"year": "2024",
		"technologies": [],
		"links": []
	}`))
	assert.Error(t, err)
}

func TestDefinitionKnownTypes(t *testing.T) {
	for _, cardType := range []string{"project", "skill", "contact", "resume", "info"} {
		doc, ok := Definition(cardType)
		assert.True(t, ok)
		assert.True(t, json.Valid([]byte(doc)))
	}

	_, ok := Definition("banner")
	assert.False(t, ok)
}
