package client

import (
	"fmt"
	"strings"

	"portfolio-chat/internal/domain"
)

// RenderCard maps a structured payload to its plain-text presentation.
// Pure function of the card's discriminant; unknown cards render empty.
func RenderCard(card domain.Card) string {
	switch c := card.(type) {
	case domain.ProjectCard:
		return renderProject(c)
	case domain.SkillCard:
		return renderSkill(c)
	case domain.ContactCard:
		return renderContact(c)
	case domain.ResumeCard:
		return renderResume(c)
	case domain.InfoCard:
		return renderInfo(c)
	default:
		return ""
	}
}

func renderProject(c domain.ProjectCard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d)\n", c.Title, c.Year)
	fmt.Fprintf(&b, "%s\n", c.Description)
	if len(c.Technologies) > 0 {
		fmt.Fprintf(&b, "Technologies: %s\n", strings.Join(c.Technologies, ", "))
	}
	for _, link := range c.Links {
		fmt.Fprintf(&b, "%s: %s\n", link.Label, link.URL)
	}
	return b.String()
}

func renderSkill(c domain.SkillCard) string {
	return fmt.Sprintf("%s\n%s\n", c.Category, strings.Join(c.Skills, ", "))
}

func renderContact(c domain.ContactCard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Email: %s\n", c.Email)
	if c.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", c.Phone)
	}
	fmt.Fprintf(&b, "Location: %s\n", c.Location)
	for _, link := range c.SocialLinks {
		fmt.Fprintf(&b, "%s: %s\n", link.Platform, link.URL)
	}
	return b.String()
}

func renderResume(c domain.ResumeCard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s\n", c.Name, c.Title)
	fmt.Fprintf(&b, "%s, %s, updated %s\n", c.Format, c.Size, c.UpdatedDate)
	if c.URL != "" {
		fmt.Fprintf(&b, "Download: %s\n", c.URL)
	}
	return b.String()
}

func renderInfo(c domain.InfoCard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", c.Title, c.Content)
	for key, value := range c.Metadata {
		fmt.Fprintf(&b, "%s: %v\n", key, value)
	}
	return b.String()
}
