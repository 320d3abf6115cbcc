package models

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// BlogPost is a CMS article stored in the "blog_posts" collection.
// Content is raw editor HTML; ContentText is a derived plain-text copy kept
// alongside it so keyword search never has to parse markup.
type BlogPost struct {
	ID          string   `firestore:"-" json:"id"`
	Title       string   `firestore:"title" json:"title"`
	Content     string   `firestore:"content" json:"content"`
	ContentText string   `firestore:"content_text" json:"content_text"`
	Category    string   `firestore:"category" json:"category"`     // legacy single-category field
	Categories  []string `firestore:"categories" json:"categories"` // current multi-category field
	Status      string   `firestore:"status" json:"status"`
	Project     string   `firestore:"project" json:"project"`
	Tags        string   `firestore:"tags" json:"tags"`
	CreatedAt   string   `firestore:"created_at" json:"created_at"`
	CreatedByID string   `firestore:"created_by_id" json:"created_by_id"`
	CreatedByName string `firestore:"created_by_name" json:"created_by_name"`
	UpdatedAt     string `firestore:"updated_at" json:"updated_at"`
	UpdatedByID   string `firestore:"updated_by_id" json:"updated_by_id"`
	UpdatedByName string `firestore:"updated_by_name" json:"updated_by_name"`
}

// CategoryList returns the categories of the post, coercing the legacy
// single-category field into a list. The list wins over the scalar and the
// stored legacy value is left untouched.
func (p *BlogPost) CategoryList() []string {
	if p.Categories != nil {
		return p.Categories
	}
	if p.Category != "" {
		return []string{p.Category}
	}
	return nil
}

// HasCategory reports whether the post carries the given category, after
// legacy-field normalization. Used by the edit form's checkbox list.
func (p *BlogPost) HasCategory(c string) bool {
	for _, have := range p.CategoryList() {
		if have == c {
			return true
		}
	}
	return false
}

var stripPolicy = bluemonday.StrictPolicy()

// StripHTML reduces editor HTML to the plain text stored in content_text
// for substring search: tags removed, entities decoded, whitespace
// collapsed to single spaces.
func StripHTML(content string) string {
	text := html.UnescapeString(stripPolicy.Sanitize(content))
	return strings.Join(strings.Fields(text), " ")
}

// MergeCategories combines the checkbox multi-select with the free-text
// comma-separated "add new" field, trimming and de-duplicating while
// preserving first-seen order.
func MergeCategories(selected []string, extra string) []string {
	all := append([]string{}, selected...)
	for _, c := range strings.Split(extra, ",") {
		all = append(all, c)
	}
	var merged []string
	seen := make(map[string]bool)
	for _, c := range all {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		merged = append(merged, c)
	}
	return merged
}
