package models

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

const (
	msgTitleRequired   = "Title field is required."
	msgNoClickbait     = "No clickbait found"
	msgContentTooShort = "Post content must be greater than or equal 250 characters long."
	msgSummaryTooLong  = "Post summary must be less than or equal to 250 characters long."
	msgCategory        = "Category must be Fiction or Non-Fiction."

	// ContentMinLength is the minimum rune count of post content.
	ContentMinLength = 250
	// SummaryMaxLength is the maximum rune count of a post summary.
	SummaryMaxLength = 250

	CategoryFiction    = "Fiction"
	CategoryNonFiction = "Non-Fiction"
)

// ClickbaitPhrases lists the substrings a post title must contain at least one of.
var ClickbaitPhrases = []string{"Won't Believe", "Secret", "Top", "Guess"}

var (
	titleRules = []validation.Rule{
		validation.Required.Error(msgTitleRequired),
		validation.By(clickbait),
	}
	contentRules = []validation.Rule{
		validation.Required.Error(msgContentTooShort),
		validation.RuneLength(ContentMinLength, 0).Error(msgContentTooShort),
	}
	summaryRules = []validation.Rule{
		validation.RuneLength(0, SummaryMaxLength).Error(msgSummaryTooLong),
	}
	categoryRules = []validation.Rule{
		validation.Required.Error(msgCategory),
		validation.In(CategoryFiction, CategoryNonFiction).Error(msgCategory),
	}
)

func clickbait(value interface{}) error {
	title, _ := validation.Indirect(value)
	s, ok := title.(string)
	if !ok {
		return validation.NewError("validation_clickbait", msgNoClickbait)
	}
	for _, phrase := range ClickbaitPhrases {
		if strings.Contains(s, phrase) {
			return nil
		}
	}
	return validation.NewError("validation_clickbait", msgNoClickbait)
}

// Post is an article. Content, summary and category are optional; when set they
// must satisfy their rules.
type Post struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Content   *string    `gorm:"type:text" json:"content"`
	Category  *string    `gorm:"size:32" json:"category"`
	Summary   *string    `gorm:"type:text" json:"summary"`
	CreatedAt time.Time  `gorm:"<-:create;not null" json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// TableName pins the table name.
func (*Post) TableName() string {
	return "posts"
}

// String renders the post for logs.
func (p *Post) String() string {
	return fmt.Sprintf("Post(id=%d, title=%s content=%s, summary=%s)", p.ID, p.Title, deref(p.Content), deref(p.Summary))
}

// PostInput carries the fields for NewPost. Nil pointers leave columns NULL.
type PostInput struct {
	Title    string
	Content  *string
	Summary  *string
	Category *string
}

// ValidateTitle requires a non-empty title containing one of ClickbaitPhrases.
func ValidateTitle(title string) (string, error) {
	if err := checkField("title", title, titleRules...); err != nil {
		return "", err
	}
	return title, nil
}

// ValidateLength applies the length bound of field, which must be "content" or "summary".
func ValidateLength(field, value string) (string, error) {
	var err error
	switch field {
	case "content":
		err = checkField(field, value, contentRules...)
	case "summary":
		err = checkField(field, value, summaryRules...)
	default:
		err = NewValidationError(field, fmt.Sprintf("no length rule for field %q", field))
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// ValidateCategory accepts exactly "Fiction" or "Non-Fiction".
func ValidateCategory(category string) (string, error) {
	if err := checkField("category", category, categoryRules...); err != nil {
		return "", err
	}
	return category, nil
}

// NewPost builds an unsaved post, validating fields in declaration order.
func NewPost(in PostInput) (*Post, error) {
	p := &Post{}
	if err := p.SetTitle(in.Title); err != nil {
		return nil, err
	}
	if in.Content != nil {
		if err := p.SetContent(*in.Content); err != nil {
			return nil, err
		}
	}
	if in.Category != nil {
		if err := p.SetCategory(*in.Category); err != nil {
			return nil, err
		}
	}
	if in.Summary != nil {
		if err := p.SetSummary(*in.Summary); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// SetTitle assigns title when valid. On error the previous title is kept.
func (p *Post) SetTitle(title string) error {
	v, err := ValidateTitle(title)
	if err != nil {
		return err
	}
	p.Title = v
	return nil
}

// SetContent assigns content when valid.
func (p *Post) SetContent(content string) error {
	v, err := ValidateLength("content", content)
	if err != nil {
		return err
	}
	p.Content = &v
	return nil
}

// SetSummary assigns summary when valid.
func (p *Post) SetSummary(summary string) error {
	v, err := ValidateLength("summary", summary)
	if err != nil {
		return err
	}
	p.Summary = &v
	return nil
}

// SetCategory assigns category when valid.
func (p *Post) SetCategory(category string) error {
	v, err := ValidateCategory(category)
	if err != nil {
		return err
	}
	p.Category = &v
	return nil
}

// ClearContent unsets the content.
func (p *Post) ClearContent() { p.Content = nil }

// ClearSummary unsets the summary.
func (p *Post) ClearSummary() { p.Summary = nil }

// ClearCategory unsets the category.
func (p *Post) ClearCategory() { p.Category = nil }

// Validate runs every field rule against the record as it stands.
func (p *Post) Validate() error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.Title, titleRules...),
		validation.Field(&p.Content, validation.When(p.Content != nil, contentRules...)),
		validation.Field(&p.Category, validation.When(p.Category != nil, categoryRules...)),
		validation.Field(&p.Summary, validation.When(p.Summary != nil, summaryRules...)),
	)
	return firstFieldError(err, "title", "content", "category", "summary")
}

// BeforeSave rejects invalid records before any SQL is issued.
func (p *Post) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}

// BeforeCreate sets CreatedAt when not provided and leaves UpdatedAt unset.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = nil
	return nil
}

// BeforeUpdate refreshes UpdatedAt.
func (p *Post) BeforeUpdate(tx *gorm.DB) error {
	now := time.Now()
	p.UpdatedAt = &now
	return nil
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
