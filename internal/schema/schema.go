// Package schema validates structured output payloads against the closed
// set of card schemas before they are decoded or sent to a client.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"portfolio-chat/internal/domain"
)

const projectSchema = `{
	"type": "object",
	"properties": {
		"type": {"const": "project"},
		"title": {"type": "string"},
		"description": {"type": "string"},
		"year": {"type": "integer"},
		"technologies": {"type": "array", "items": {"type": "string"}},
		"links": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"label": {"type": "string"},
					"url": {"type": "string"}
				},
				"required": ["label", "url"]
			}
		}
	},
	"required": ["type", "title", "description", "year", "technologies", "links"]
}`

const skillSchema = `{
	"type": "object",
	"properties": {
		"type": {"const": "skill"},
		"category": {"type": "string"},
		"skills": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["type", "category", "skills"]
}`

const contactSchema = `{
	"type": "object",
	"properties": {
		"type": {"const": "contact"},
		"email": {"type": "string"},
		"phone": {"type": "string"},
		"location": {"type": "string"},
		"socialLinks": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"platform": {"type": "string"},
					"url": {"type": "string"}
				},
				"required": ["platform", "url"]
			}
		}
	},
	"required": ["type", "email", "location", "socialLinks"]
}`

const resumeSchema = `{
	"type": "object",
	"properties": {
		"type": {"const": "resume"},
		"name": {"type": "string"},
		"title": {"type": "string"},
		"format": {"type": "string"},
		"updatedDate": {"type": "string"},
		"size": {"type": "string"},
		"url": {"type": "string"}
	},
	"required": ["type", "name", "title", "format", "updatedDate", "size"]
}`

const infoSchema = `{
	"type": "object",
	"properties": {
		"type": {"const": "info"},
		"title": {"type": "string"},
		"content": {"type": "string"},
		"metadata": {"type": "object"}
	},
	"required": ["type", "title", "content"]
}`

var schemas = map[string]*gojsonschema.Schema{
	domain.CardTypeProject: mustCompile(projectSchema),
	domain.CardTypeSkill:   mustCompile(skillSchema),
	domain.CardTypeContact: mustCompile(contactSchema),
	domain.CardTypeResume:  mustCompile(resumeSchema),
	domain.CardTypeInfo:    mustCompile(infoSchema),
}

func mustCompile(doc string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
	if err != nil {
		panic(fmt.Sprintf("schema: invalid schema document: %v", err))
	}
	return s
}

// Definition returns the JSON Schema document for a card type. It is
// embedded into structured-completion prompts so the model sees the exact
// shape it must emit.
func Definition(cardType string) (string, bool) {
	switch cardType {
	case domain.CardTypeProject:
		return projectSchema, true
	case domain.CardTypeSkill:
		return skillSchema, true
	case domain.CardTypeContact:
		return contactSchema, true
	case domain.CardTypeResume:
		return resumeSchema, true
	case domain.CardTypeInfo:
		return infoSchema, true
	}
	return "", false
}

// Validate checks a raw payload against the schema selected by its "type"
// discriminant. Unknown or missing discriminants fail validation, never a
// best-effort partial accept.
func Validate(raw json.RawMessage) error {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return fmt.Errorf("structured output is not valid JSON: %w", err)
	}

	s, ok := schemas[head.Type]
	if !ok {
		if head.Type == "" {
			return fmt.Errorf("structured output is missing the type discriminant")
		}
		return fmt.Errorf("unknown structured output type %q", head.Type)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
	}
	return nil
}
