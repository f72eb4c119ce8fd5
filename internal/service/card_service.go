package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"portfolio-chat/internal/domain"
	"portfolio-chat/internal/schema"
)

const firstPersonVoice = ` Write in FIRST PERSON (use "I", "my", "me" - NOT "your", "you"). You are speaking as the person, not about them.`

// CardService resolves the six card categories into a structured payload
// plus a first-person message. Static portfolio data is used verbatim when
// present; the model only synthesizes payloads for missing categories.
type CardService struct {
	ctxService *ContextService
	provider   Provider
	logger     *zap.Logger
}

// NewCardService creates a new card service. ctxService may be nil when
// the portfolio document failed to load; every resolution then fails with
// ErrDataUnavailable.
func NewCardService(ctxService *ContextService, provider Provider, logger *zap.Logger) *CardService {
	return &CardService{
		ctxService: ctxService,
		provider:   provider,
		logger:     logger,
	}
}

// Resolve returns the card response for a category. One attempt per
// upstream call, no retries; provider failures propagate to the caller.
func (s *CardService) Resolve(ctx context.Context, category string) (*domain.CardResponse, error) {
	if s.ctxService == nil {
		return nil, domain.ErrDataUnavailable
	}

	switch category {
	case domain.CategoryMe:
		return s.meCard(ctx)
	case domain.CategoryProjects:
		return s.projectsCard(ctx)
	case domain.CategorySkills:
		return s.skillsCard(ctx)
	case domain.CategoryContact:
		return s.contactCard(ctx)
	case domain.CategoryResume:
		return s.resumeCard(ctx)
	case domain.CategoryFun:
		return s.funCard(ctx)
	default:
		return nil, domain.ErrUnknownCategory
	}
}

func (s *CardService) meCard(ctx context.Context) (*domain.CardResponse, error) {
	card, err := s.synthesize(ctx, domain.CardTypeInfo,
		"Generate an info card about yourself.",
		"Generate an info card about yourself with your bio, background, and key information.")
	if err != nil {
		return nil, err
	}

	message, err := s.message(ctx,
		`Provide a professional introduction about yourself. You are speaking to a potential employer, client, or hiring manager. Use the information provided above. Write in FIRST PERSON (use "I", "my", "me"). Be confident and professional.`,
		"Tell me about yourself. Who are you?")
	if err != nil {
		return nil, err
	}

	return &domain.CardResponse{StructuredData: card, Message: message}, nil
}

func (s *CardService) projectsCard(ctx context.Context) (*domain.CardResponse, error) {
	projects := s.ctxService.Data().Projects

	var structured domain.Card
	if len(projects) > 0 {
		structured = projectToCard(projects[0])
	} else {
		card, err := s.synthesize(ctx, domain.CardTypeProject,
			"Generate a project card.",
			"Generate a project card with details about one of your projects.")
		if err != nil {
			return nil, err
		}
		structured = card
	}

	// The message must add color only, never restate card fields.
	message, err := s.message(ctx,
		`Provide a brief, engaging summary about the projects. Do NOT repeat the project details that are already visible in the card. Instead, provide context, insights, or what makes these projects special. Keep it concise (2-3 sentences max).`+firstPersonVoice,
		"Give me a brief summary about my projects that adds value beyond what's shown in the cards.")
	if err != nil {
		return nil, err
	}

	all := make([]domain.ProjectCard, len(projects))
	for i, project := range projects {
		all[i] = projectToCard(project)
	}

	return &domain.CardResponse{StructuredData: structured, Message: message, Projects: all}, nil
}

func (s *CardService) skillsCard(ctx context.Context) (*domain.CardResponse, error) {
	skills := s.ctxService.Data().Skills

	var structured domain.Card
	if len(skills) > 0 {
		first := skills[0]
		structured = domain.SkillCard{
			Type:     domain.CardTypeSkill,
			Category: first.Category,
			Skills:   first.Skills,
		}
	} else {
		card, err := s.synthesize(ctx, domain.CardTypeSkill,
			"Generate a skill card.",
			"Generate a skill card with your skills.")
		if err != nil {
			return nil, err
		}
		structured = card
	}

	message, err := s.message(ctx,
		"Provide information about your skills."+firstPersonVoice,
		"Tell me about your skills.")
	if err != nil {
		return nil, err
	}

	return &domain.CardResponse{StructuredData: structured, Message: message}, nil
}

func (s *CardService) contactCard(ctx context.Context) (*domain.CardResponse, error) {
	contact := s.ctxService.Data().ContactInfo

	var structured domain.Card
	if contact.Email != "" {
		socialLinks := contact.SocialLinks
		if socialLinks == nil {
			socialLinks = []domain.SocialLink{}
		}
		structured = domain.ContactCard{
			Type:        domain.CardTypeContact,
			Email:       contact.Email,
			Phone:       contact.Phone,
			Location:    contact.Location,
			SocialLinks: socialLinks,
		}
	} else {
		card, err := s.synthesize(ctx, domain.CardTypeContact,
			"Generate a contact card.",
			"Generate a contact card with your contact information.")
		if err != nil {
			return nil, err
		}
		structured = card
	}

	message, err := s.message(ctx,
		"Provide your contact information."+firstPersonVoice,
		"How can I contact you?")
	if err != nil {
		return nil, err
	}

	return &domain.CardResponse{StructuredData: structured, Message: message}, nil
}

func (s *CardService) resumeCard(ctx context.Context) (*domain.CardResponse, error) {
	resume := s.ctxService.Data().Resume

	var structured domain.Card
	if resume != nil {
		structured = domain.ResumeCard{
			Type:        domain.CardTypeResume,
			Name:        resume.Name,
			Title:       resume.Title,
			Format:      resume.Format,
			UpdatedDate: resume.UpdatedDate,
			Size:        resume.Size,
			URL:         resume.URL,
		}
	} else {
		card, err := s.synthesize(ctx, domain.CardTypeResume,
			"Generate a resume card.",
			"Generate a resume card with resume information.")
		if err != nil {
			return nil, err
		}
		structured = card
	}

	message, err := s.message(ctx,
		"Provide information about your resume."+firstPersonVoice,
		"Show me your resume.")
	if err != nil {
		return nil, err
	}

	return &domain.CardResponse{StructuredData: structured, Message: message}, nil
}

func (s *CardService) funCard(ctx context.Context) (*domain.CardResponse, error) {
	card, err := s.synthesize(ctx, domain.CardTypeInfo,
		"Generate an info card about fun facts or interesting things about yourself.",
		"Generate an info card with fun facts about yourself.")
	if err != nil {
		return nil, err
	}

	message, err := s.message(ctx,
		"Share something fun or interesting about yourself."+firstPersonVoice,
		"Tell me something fun about yourself.")
	if err != nil {
		return nil, err
	}

	return &domain.CardResponse{StructuredData: card, Message: message}, nil
}

// synthesize asks the model for a payload conforming to the card type's
// schema and validates it before decoding.
func (s *CardService) synthesize(ctx context.Context, cardType, instruction, input string) (domain.Card, error) {
	schemaDoc, ok := schema.Definition(cardType)
	if !ok {
		return nil, domain.ErrUnknownCategory
	}

	system := s.ctxService.SystemPrompt() + "\n\n" + instruction + " Return only valid JSON matching the schema."
	raw, err := s.provider.CompleteStructured(ctx, system, nil, input, schemaDoc)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s card: %w", cardType, err)
	}

	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("generated %s card rejected: %w", cardType, err)
	}
	return domain.DecodeCard(raw)
}

// message asks the model for the accompanying first-person message.
func (s *CardService) message(ctx context.Context, instruction, input string) (string, error) {
	system := s.ctxService.SystemPrompt() + "\n\n" + instruction
	message, err := s.provider.Complete(ctx, system, nil, input)
	if err != nil {
		return "", fmt.Errorf("failed to generate card message: %w", err)
	}
	return message, nil
}

func projectToCard(project domain.Project) domain.ProjectCard {
	technologies := project.Technologies
	if technologies == nil {
		technologies = []string{}
	}
	links := project.Links
	if links == nil {
		links = []domain.Link{}
	}
	return domain.ProjectCard{
		Type:         domain.CardTypeProject,
		Title:        project.Title,
		Description:  project.Description,
		Year:         project.Year,
		Technologies: technologies,
		Links:        links,
	}
}
