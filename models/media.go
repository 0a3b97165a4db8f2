package models

import "time"

// Media content types.
const (
	MediaTypeBlog      = "blog"
	MediaTypeAward     = "award"
	MediaTypeNews      = "news"
	MediaTypeCaseStudy = "case_study"
)

// IsMediaType reports whether t is one of the known media content types.
func IsMediaType(t string) bool {
	switch t {
	case MediaTypeBlog, MediaTypeAward, MediaTypeNews, MediaTypeCaseStudy:
		return true
	}
	return false
}

// MediaContent represents a row in the "media_content" table: blog posts,
// awards, news items and case studies. Only published items are public.
type MediaContent struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Type         string     `json:"type"`
	Author       *string    `json:"author"`
	Content      *string    `json:"content"`
	Summary      *string    `json:"summary"`
	ImageURL     *string    `json:"imageUrl"`
	FileURL      *string    `json:"fileUrl"`
	Source       *string    `json:"source"`
	ExternalLink *string    `json:"externalLink"`
	Tags         StringList `json:"tags"`
	IsPublished  bool       `json:"isPublished"`
	PublishedAt  *time.Time `json:"publishedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// CreateMediaContentParams holds the fields required to add media content.
// IsPublished defaults to true; PublishedAt defaults to the creation time of
// a published item.
type CreateMediaContentParams struct {
	Title        string     `json:"title" binding:"required"`
	Type         string     `json:"type" binding:"required,oneof=blog award news case_study"`
	Author       *string    `json:"author"`
	Content      *string    `json:"content"`
	Summary      *string    `json:"summary"`
	ImageURL     *string    `json:"imageUrl"`
	FileURL      *string    `json:"fileUrl"`
	Source       *string    `json:"source"`
	ExternalLink *string    `json:"externalLink" binding:"omitempty,url"`
	Tags         StringList `json:"tags"`
	IsPublished  *bool      `json:"isPublished"`
	PublishedAt  *time.Time `json:"publishedAt"`
}

// PublishedAtFor returns the publish timestamp a new item should carry.
func (p CreateMediaContentParams) PublishedAtFor(now time.Time) *time.Time {
	if p.PublishedAt != nil {
		t := p.PublishedAt.UTC()
		return &t
	}
	if BoolOr(p.IsPublished, true) {
		return &now
	}
	return nil
}

// UpdateMediaContentParams holds fields that can be updated. Publishing an
// item that was never published stamps PublishedAt.
type UpdateMediaContentParams struct {
	Title        *string     `json:"title" binding:"omitempty,min=1"`
	Type         *string     `json:"type" binding:"omitempty,oneof=blog award news case_study"`
	Author       *string     `json:"author"`
	Content      *string     `json:"content"`
	Summary      *string     `json:"summary"`
	ImageURL     *string     `json:"imageUrl"`
	FileURL      *string     `json:"fileUrl"`
	Source       *string     `json:"source"`
	ExternalLink *string     `json:"externalLink" binding:"omitempty,url"`
	Tags         *StringList `json:"tags"`
	IsPublished  *bool       `json:"isPublished"`
	PublishedAt  *time.Time  `json:"publishedAt"`
}
