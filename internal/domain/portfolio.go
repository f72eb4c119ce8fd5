package domain

// PersonalInfo describes the portfolio owner
type PersonalInfo struct {
	Name     string `json:"name" validate:"required"`
	Bio      string `json:"bio" validate:"required"`
	Image    string `json:"image,omitempty"`
	Location string `json:"location" validate:"required"`
	Age      int    `json:"age,omitempty"`
	Tagline  string `json:"tagline,omitempty"`
}

// Link is a labelled URL attached to a project
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Project represents a portfolio project entry
type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Year         int      `json:"year"`
	Technologies []string `json:"technologies"`
	Links        []Link   `json:"links"`
	Category     string   `json:"category,omitempty"`
}

// SkillGroup groups related skills under a category
type SkillGroup struct {
	Category    string   `json:"category"`
	Skills      []string `json:"skills"`
	Proficiency string   `json:"proficiency,omitempty"`
}

// WorkExperience represents a work history entry
type WorkExperience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate,omitempty"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
}

// Education represents an education entry
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
}

// SocialLink is a social platform link
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// ContactInfo holds the owner's contact details
type ContactInfo struct {
	Email       string       `json:"email" validate:"required,email"`
	Phone       string       `json:"phone,omitempty"`
	Location    string       `json:"location" validate:"required"`
	SocialLinks []SocialLink `json:"socialLinks"`
}

// Resume describes the downloadable resume document
type Resume struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Format      string `json:"format"`
	UpdatedDate string `json:"updatedDate"`
	Size        string `json:"size"`
	URL         string `json:"url,omitempty"`
}

// PortfolioData is the static portfolio document. It is loaded once at
// startup and never mutated, so concurrent reads need no synchronization.
type PortfolioData struct {
	PersonalInfo   PersonalInfo     `json:"personalInfo" validate:"required"`
	Projects       []Project        `json:"projects"`
	Skills         []SkillGroup     `json:"skills"`
	WorkExperience []WorkExperience `json:"workExperience,omitempty"`
	Education      []Education      `json:"education,omitempty"`
	ContactInfo    ContactInfo      `json:"contactInfo"`
	FunFacts       []string         `json:"funFacts,omitempty"`
	Resume         *Resume          `json:"resume,omitempty"`
}
