package client_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"portfolio-chat/internal/domain"
	"portfolio-chat/pkg/client"
)

func TestRenderProjectCard(t *testing.T) {
	out := client.RenderCard(domain.ProjectCard{
		Type:         "project",
		Title:        "Chat Widget",
		Description:  "Embeddable chat widget.",
		Year:         2024,
		Technologies: []string{"Go", "TypeScript"},
		Links:        []domain.Link{{Label: "GitHub", URL: "https://github.com/example/widget"}},
	})

	assert.Contains(t, out, "Chat Widget (2024)")
	assert.Contains(t, out, "Technologies: Go, TypeScript")
	assert.Contains(t, out, "GitHub: https://github.com/example/widget")
}

func TestRenderSkillCard(t *testing.T) {
	out := client.RenderCard(domain.SkillCard{
		Type:     "skill",
		Category: "Backend",
		Skills:   []string{"Go", "PostgreSQL"},
	})

	assert.Equal(t, "Backend\nGo, PostgreSQL\n", out)
}

func TestRenderContactCardOmitsEmptyPhone(t *testing.T) {
	out := client.RenderCard(domain.ContactCard{
		Type:     "contact",
		Email:    "alex@example.com",
		Location: "Berlin",
	})

	assert.Contains(t, out, "Email: alex@example.com")
	assert.NotContains(t, out, "Phone")
}

func TestRenderResumeCard(t *testing.T) {
	out := client.RenderCard(domain.ResumeCard{
		Type:        "resume",
		Name:        "Alex Doe",
		Title:       "Backend Engineer",
		Format:      "PDF",
		UpdatedDate: "2024-05-01",
		Size:        "120 KB",
	})

	assert.Contains(t, out, "Alex Doe - Backend Engineer")
	assert.Contains(t, out, "updated 2024-05-01")
	assert.NotContains(t, out, "Download")
}

func TestRenderUnknownCardIsEmpty(t *testing.T) {
	assert.Empty(t, client.RenderCard(nil))
}
