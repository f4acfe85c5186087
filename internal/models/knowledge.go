package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Profession classifies a knowledge entry by the role it was written for.
type Profession string

const (
	ProfessionAccountant        Profession = "Accountant"
	ProfessionAccountsPayable   Profession = "Accounts Payable Specialist"
	ProfessionFinancialAnalyst  Profession = "Financial Analyst"
	ProfessionBackendDeveloper  Profession = "Backend Developer"
	ProfessionFrontendDeveloper Profession = "Frontend Developer"
	ProfessionFullStack         Profession = "Full Stack Developer"
	ProfessionDevOpsEngineer    Profession = "DevOps Engineer"
	ProfessionDataScientist     Profession = "Data Scientist"
	ProfessionDataEngineer      Profession = "Data Engineer"
	ProfessionManager           Profession = "Manager"
	ProfessionProjectManager    Profession = "Project Manager"
	ProfessionProductManager    Profession = "Product Manager"
	ProfessionQAEngineer        Profession = "QA Engineer"
	ProfessionSysAdmin          Profession = "Systems Administrator"
	ProfessionNetworkEngineer   Profession = "Network Engineer"
	ProfessionSecurityEngineer  Profession = "Security Engineer"
	ProfessionCloudArchitect    Profession = "Cloud Architect"
	ProfessionSoftwareArchitect Profession = "Software Architect"
	ProfessionBusinessAnalyst   Profession = "Business Analyst"
	ProfessionUXUIDesigner      Profession = "UX/UI Designer"
	ProfessionMarketingManager  Profession = "Marketing Manager"
	ProfessionSalesManager      Profession = "Sales Manager"
	ProfessionHRManager         Profession = "HR Manager"
	ProfessionGeneral           Profession = "General"
)

// CVSection identifies which part of a CV an entry belongs to.
type CVSection string

const (
	SectionSummary        CVSection = "summary"
	SectionExperience     CVSection = "experience"
	SectionAchievement    CVSection = "achievement"
	SectionResponsibility CVSection = "responsibility"
	SectionSkill          CVSection = "skill"
	SectionEducation      CVSection = "education"
	SectionCertification  CVSection = "certification"
	SectionAward          CVSection = "award"
	SectionProject        CVSection = "project"
)

// ContentType classifies the structural form of an entry's text.
type ContentType string

const (
	ContentTypeBullet         ContentType = "bullet"
	ContentTypeParagraph      ContentType = "paragraph"
	ContentTypeJobDescription ContentType = "job_description"
	ContentTypeAchievement    ContentType = "achievement"
)

var (
	professions = map[Profession]struct{}{
		ProfessionAccountant: {}, ProfessionAccountsPayable: {},
		ProfessionFinancialAnalyst: {}, ProfessionBackendDeveloper: {},
		ProfessionFrontendDeveloper: {}, ProfessionFullStack: {},
		ProfessionDevOpsEngineer: {}, ProfessionDataScientist: {},
		ProfessionDataEngineer: {}, ProfessionManager: {},
		ProfessionProjectManager: {}, ProfessionProductManager: {},
		ProfessionQAEngineer: {}, ProfessionSysAdmin: {},
		ProfessionNetworkEngineer: {}, ProfessionSecurityEngineer: {},
		ProfessionCloudArchitect: {}, ProfessionSoftwareArchitect: {},
		ProfessionBusinessAnalyst: {}, ProfessionUXUIDesigner: {},
		ProfessionMarketingManager: {}, ProfessionSalesManager: {},
		ProfessionHRManager: {}, ProfessionGeneral: {},
	}
	cvSections = map[CVSection]struct{}{
		SectionSummary: {}, SectionExperience: {}, SectionAchievement: {},
		SectionResponsibility: {}, SectionSkill: {}, SectionEducation: {},
		SectionCertification: {}, SectionAward: {}, SectionProject: {},
	}
	contentTypes = map[ContentType]struct{}{
		ContentTypeBullet: {}, ContentTypeParagraph: {},
		ContentTypeJobDescription: {}, ContentTypeAchievement: {},
	}
)

// ParseProfession validates a raw profession value.
func ParseProfession(s string) (Profession, error) {
	p := Profession(s)
	if _, ok := professions[p]; !ok {
		return "", fmt.Errorf("unknown profession %q", s)
	}
	return p, nil
}

// ParseCVSection validates a raw CV section value.
func ParseCVSection(s string) (CVSection, error) {
	cs := CVSection(s)
	if _, ok := cvSections[cs]; !ok {
		return "", fmt.Errorf("unknown cv section %q", s)
	}
	return cs, nil
}

// ParseContentType validates a raw content type value.
func ParseContentType(s string) (ContentType, error) {
	ct := ContentType(s)
	if _, ok := contentTypes[ct]; !ok {
		return "", fmt.Errorf("unknown content type %q", s)
	}
	return ct, nil
}

// KnowledgeEntry is one indexed snippet of professional CV text. Entries
// are owned by the knowledge store; everything downstream treats them as
// read-only, including the embedding slice.
type KnowledgeEntry struct {
	ID             uuid.UUID   `db:"id" json:"id"`
	Title          string      `db:"title" json:"title"`
	Content        string      `db:"content" json:"content"`
	Profession     Profession  `db:"profession" json:"profession"`
	CVSection      CVSection   `db:"cv_section" json:"cv_section"`
	ContentType    ContentType `db:"content_type" json:"content_type"`
	Embedding      []float32   `db:"embedding" json:"-"`
	QualityScore   float64     `db:"quality_score" json:"quality_score"`
	WordCount      int         `db:"word_count" json:"word_count"`
	SourceDocument string      `db:"source_document" json:"source_document,omitempty"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at" json:"updated_at"`
}

// HasEmbedding reports whether the entry can participate in semantic search.
func (e *KnowledgeEntry) HasEmbedding() bool {
	return len(e.Embedding) > 0
}

// Filter narrows a knowledge store lookup. Nil fields match everything.
type Filter struct {
	Profession  *Profession
	CVSection   *CVSection
	ContentType *ContentType
}

// Matches reports whether an entry passes every set filter field.
func (f Filter) Matches(e *KnowledgeEntry) bool {
	if f.Profession != nil && e.Profession != *f.Profession {
		return false
	}
	if f.CVSection != nil && e.CVSection != *f.CVSection {
		return false
	}
	if f.ContentType != nil && e.ContentType != *f.ContentType {
		return false
	}
	return true
}

// Query is one retrieval request. TopK of 0 means "use the configured
// default for the chosen search mode".
type Query struct {
	Text   string
	Filter Filter
	TopK   int
}

// RankedResult is one entry in a final ranked result set. Rank is 0-based;
// ties on score are broken by ascending entry id.
type RankedResult struct {
	Entry *KnowledgeEntry `json:"entry"`
	Score float64         `json:"score"`
	Rank  int             `json:"rank"`
}
