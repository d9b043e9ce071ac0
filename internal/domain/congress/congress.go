package congress

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Colors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Contact struct {
	Email     string `json:"email"`
	Whatsapp  string `json:"whatsapp,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// TemplateURLs holds the public links of the downloadable submission templates.
type TemplateURLs struct {
	ResumoExpandidoComID string `json:"resumoExpandidoComId,omitempty"`
	ResumoExpandidoSemID string `json:"resumoExpandidoSemId,omitempty"`
	ApresentacaoOral     string `json:"apresentacaoOral,omitempty"`
	EBanner              string `json:"eBanner,omitempty"`
}

// EditalSection is one rules section; Content is rich-text HTML.
type EditalSection struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Congress struct {
	ID                   uuid.UUID                          `gorm:"type:uuid;primaryKey" json:"id"`
	Slug                 string                             `gorm:"uniqueIndex;not null;column:slug" json:"slug"`
	Title                string                             `gorm:"not null;column:title" json:"title"`
	Subtitle             string                             `gorm:"column:subtitle" json:"subtitle"`
	Date                 string                             `gorm:"column:date" json:"date"`
	Description          string                             `gorm:"column:description" json:"description"`
	SubmissionURL        string                             `gorm:"column:submission_url" json:"submissionUrl,omitempty"`
	BookChapterEditalURL string                             `gorm:"column:book_chapter_edital_url" json:"bookChapterEditalUrl,omitempty"`
	IsChatEnabled        *bool                              `gorm:"column:is_chat_enabled" json:"isChatEnabled,omitempty"`
	TrainingData         string                             `gorm:"column:training_data" json:"trainingData,omitempty"`
	TrainingFileURLs     datatypes.JSONSlice[string]        `gorm:"column:training_file_urls" json:"trainingFileUrls"`
	Colors               datatypes.JSONType[Colors]         `gorm:"column:colors" json:"colors"`
	FAQ                  datatypes.JSONSlice[FAQItem]       `gorm:"column:faq" json:"faq"`
	Contact              datatypes.JSONType[Contact]        `gorm:"column:contact" json:"contact"`
	TemplateURLs         datatypes.JSONType[TemplateURLs]   `gorm:"column:template_urls" json:"templateUrls"`
	EditalSections       datatypes.JSONSlice[EditalSection] `gorm:"column:edital_sections" json:"editalSections"`
	EditalDates          datatypes.JSONType[*EditalDates]   `gorm:"column:edital_dates" json:"editalDates"`

	CreatedAt time.Time `gorm:"not null;column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at" json:"updatedAt"`
}

func (Congress) TableName() string { return "congresses" }

func (c *Congress) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Congress) BeforeSave(tx *gorm.DB) error {
	c.Normalize()
	return nil
}

// Normalize replaces nil lists so they serialize as [] rather than null.
func (c *Congress) Normalize() {
	if c.TrainingFileURLs == nil {
		c.TrainingFileURLs = datatypes.JSONSlice[string]{}
	}
	if c.FAQ == nil {
		c.FAQ = datatypes.JSONSlice[FAQItem]{}
	}
	if c.EditalSections == nil {
		c.EditalSections = datatypes.JSONSlice[EditalSection]{}
	}
}

// ChatEnabled treats an unset flag as enabled.
func (c *Congress) ChatEnabled() bool {
	return c.IsChatEnabled == nil || *c.IsChatEnabled
}

// Dates returns the configured edital dates, or nil when the congress has none.
func (c *Congress) Dates() *EditalDates {
	return c.EditalDates.Data()
}
