package domain

import (
	"encoding/json"
	"fmt"
)

// Card type discriminants. The set is closed: unknown discriminants are
// rejected, never coerced.
const (
	CardTypeProject = "project"
	CardTypeSkill   = "skill"
	CardTypeContact = "contact"
	CardTypeResume  = "resume"
	CardTypeInfo    = "info"
)

// Card is a structured output payload rendered by the client as a
// distinct visual component. Exactly one variant shape per payload.
type Card interface {
	CardType() string
}

// ProjectCard is the structured payload for a single project
type ProjectCard struct {
	Type         string   `json:"type"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Year         int      `json:"year"`
	Technologies []string `json:"technologies"`
	Links        []Link   `json:"links"`
}

func (ProjectCard) CardType() string { return CardTypeProject }

// SkillCard is the structured payload for a skill category
type SkillCard struct {
	Type     string   `json:"type"`
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

func (SkillCard) CardType() string { return CardTypeSkill }

// ContactCard is the structured payload for contact details
type ContactCard struct {
	Type        string       `json:"type"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone,omitempty"`
	Location    string       `json:"location"`
	SocialLinks []SocialLink `json:"socialLinks"`
}

func (ContactCard) CardType() string { return CardTypeContact }

// ResumeCard is the structured payload for the resume document
type ResumeCard struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Format      string `json:"format"`
	UpdatedDate string `json:"updatedDate"`
	Size        string `json:"size"`
	URL         string `json:"url,omitempty"`
}

func (ResumeCard) CardType() string { return CardTypeResume }

// InfoCard is the free-form structured payload used for the "me" and
// "fun" categories
type InfoCard struct {
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (InfoCard) CardType() string { return CardTypeInfo }

// DecodeCard decodes a raw structured payload into its concrete variant
// by dispatching on the "type" discriminant.
func DecodeCard(raw json.RawMessage) (Card, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("decode card: %w", err)
	}

	switch head.Type {
	case CardTypeProject:
		var card ProjectCard
		if err := json.Unmarshal(raw, &card); err != nil {
			return nil, fmt.Errorf("decode project card: %w", err)
		}
		return card, nil
	case CardTypeSkill:
		var card SkillCard
		if err := json.Unmarshal(raw, &card); err != nil {
			return nil, fmt.Errorf("decode skill card: %w", err)
		}
		return card, nil
	case CardTypeContact:
		var card ContactCard
		if err := json.Unmarshal(raw, &card); err != nil {
			return nil, fmt.Errorf("decode contact card: %w", err)
		}
		return card, nil
	case CardTypeResume:
		var card ResumeCard
		if err := json.Unmarshal(raw, &card); err != nil {
			return nil, fmt.Errorf("decode resume card: %w", err)
		}
		return card, nil
	case CardTypeInfo:
		var card InfoCard
		if err := json.Unmarshal(raw, &card); err != nil {
			return nil, fmt.Errorf("decode info card: %w", err)
		}
		return card, nil
	case "":
		return nil, fmt.Errorf("decode card: missing type discriminant")
	default:
		return nil, fmt.Errorf("decode card: unknown type %q", head.Type)
	}
}
