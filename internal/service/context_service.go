package service

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"portfolio-chat/internal/config"
	"portfolio-chat/internal/domain"
)

// ContextService loads the static portfolio document and renders it into
// the system prompt shared by every LLM call. The document is read once;
// the service is read-only afterwards.
type ContextService struct {
	data         *domain.PortfolioData
	systemPrompt string
}

// NewContextService loads and validates the portfolio document and
// precomputes the system prompt.
func NewContextService(cfg *config.Config) (*ContextService, error) {
	raw, err := os.ReadFile(cfg.Portfolio.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read portfolio document: %w", err)
	}

	var data domain.PortfolioData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio document: %w", err)
	}

	if err := validator.New().Struct(&data); err != nil {
		return nil, fmt.Errorf("invalid portfolio document: %w", err)
	}

	return &ContextService{
		data:         &data,
		systemPrompt: renderSystemPrompt(&data),
	}, nil
}

// Data returns the portfolio document
func (s *ContextService) Data() *domain.PortfolioData {
	return s.data
}

// PersonalInfo returns the owner's personal information
func (s *ContextService) PersonalInfo() domain.PersonalInfo {
	return s.data.PersonalInfo
}

// SystemPrompt returns the precomputed system prompt
func (s *ContextService) SystemPrompt() string {
	return s.systemPrompt
}

// renderSystemPrompt formats the portfolio document as a natural-language
// briefing for the model: personal info, projects, skills, experience,
// education, contact, fun facts, then behavioral instructions.
func renderSystemPrompt(data *domain.PortfolioData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an AI assistant representing %s.\n\n", data.PersonalInfo.Name)

	b.WriteString("Personal Information:\n")
	fmt.Fprintf(&b, "- Name: %s\n", data.PersonalInfo.Name)
	fmt.Fprintf(&b, "- Bio: %s\n", data.PersonalInfo.Bio)
	fmt.Fprintf(&b, "- Location: %s\n", data.PersonalInfo.Location)
	if data.PersonalInfo.Age > 0 {
		fmt.Fprintf(&b, "- Age: %d\n", data.PersonalInfo.Age)
	}
	if data.PersonalInfo.Tagline != "" {
		fmt.Fprintf(&b, "- Tagline: %s\n", data.PersonalInfo.Tagline)
	}
	b.WriteString("\n")

	if len(data.Projects) > 0 {
		b.WriteString("Projects:\n")
		for i, project := range data.Projects {
			fmt.Fprintf(&b, "%d. %s (%d)\n", i+1, project.Title, project.Year)
			fmt.Fprintf(&b, "   Description: %s\n", project.Description)
			if len(project.Technologies) > 0 {
				fmt.Fprintf(&b, "   Technologies: %s\n", strings.Join(project.Technologies, ", "))
			}
			if len(project.Links) > 0 {
				links := make([]string, len(project.Links))
				for j, link := range project.Links {
					links[j] = fmt.Sprintf("%s: %s", link.Label, link.URL)
				}
				fmt.Fprintf(&b, "   Links: %s\n", strings.Join(links, ", "))
			}
			b.WriteString("\n")
		}
	}

	if len(data.Skills) > 0 {
		b.WriteString("Skills:\n")
		for _, group := range data.Skills {
			fmt.Fprintf(&b, "- %s: %s\n", group.Category, strings.Join(group.Skills, ", "))
		}
		b.WriteString("\n")
	}

	if len(data.WorkExperience) > 0 {
		b.WriteString("Work Experience:\n")
		for _, exp := range data.WorkExperience {
			end := exp.EndDate
			if end == "" {
				end = "Present"
			}
			fmt.Fprintf(&b, "- %s at %s (%s - %s)\n", exp.Position, exp.Company, exp.StartDate, end)
			fmt.Fprintf(&b, "  %s\n", exp.Description)
			if len(exp.Technologies) > 0 {
				fmt.Fprintf(&b, "  Technologies: %s\n", strings.Join(exp.Technologies, ", "))
			}
		}
		b.WriteString("\n")
	}

	if len(data.Education) > 0 {
		b.WriteString("Education:\n")
		for _, edu := range data.Education {
			degree := edu.Degree
			if edu.Field != "" {
				degree = fmt.Sprintf("%s in %s", edu.Degree, edu.Field)
			}
			end := edu.EndDate
			if end == "" {
				end = "Present"
			}
			fmt.Fprintf(&b, "- %s from %s\n", degree, edu.Institution)
			fmt.Fprintf(&b, "  %s - %s\n", edu.StartDate, end)
		}
		b.WriteString("\n")
	}

	b.WriteString("Contact Information:\n")
	fmt.Fprintf(&b, "- Email: %s\n", data.ContactInfo.Email)
	if data.ContactInfo.Phone != "" {
		fmt.Fprintf(&b, "- Phone: %s\n", data.ContactInfo.Phone)
	}
	fmt.Fprintf(&b, "- Location: %s\n", data.ContactInfo.Location)
	if len(data.ContactInfo.SocialLinks) > 0 {
		links := make([]string, len(data.ContactInfo.SocialLinks))
		for i, link := range data.ContactInfo.SocialLinks {
			links[i] = fmt.Sprintf("%s: %s", link.Platform, link.URL)
		}
		fmt.Fprintf(&b, "- Social Links: %s\n", strings.Join(links, ", "))
	}
	b.WriteString("\n")

	if len(data.FunFacts) > 0 {
		b.WriteString("Fun Facts:\n")
		for _, fact := range data.FunFacts {
			fmt.Fprintf(&b, "- %s\n", fact)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nInstructions:\n")
	fmt.Fprintf(&b, "- Answer questions about %s based on the information above.\n", data.PersonalInfo.Name)
	b.WriteString("- Be friendly, professional, and engaging.\n")
	b.WriteString("- When asked about projects, skills, contact info, or resume, provide structured data along with your response.\n")
	b.WriteString("- Use the structured output format when appropriate.\n")

	return b.String()
}
