package models

import (
	"sort"
	"strings"
)

// List filtering mirrors the list pages: everything is fetched wholesale
// and reduced in memory, so every filter is a pure slice operation here.
// Correctness depends on loading the full collection per request; that
// scaling weakness is inherited deliberately.

// Sort keys accepted by the list pages. created_at_desc is the default.
const (
	SortCreatedAtDesc = "created_at_desc"
	SortCreatedAtAsc  = "created_at_asc"
	SortNameAsc       = "name_asc"
	SortNameDesc      = "name_desc"
)

// BuyerFilter holds the query parameters of the buyer list page.
type BuyerFilter struct {
	Q          string
	Level      string
	IntentType string
	Stage      string
}

// FilterBuyers applies, in order: keyword substring match over name and
// phone (case-sensitive), then equality filters on level, intent type and
// stage. A zero filter returns the input unchanged.
func FilterBuyers(buyers []Buyer, f BuyerFilter) []Buyer {
	out := buyers
	if f.Q != "" {
		var kept []Buyer
		for _, b := range out {
			if strings.Contains(b.Name, f.Q) || strings.Contains(b.Phone, f.Q) {
				kept = append(kept, b)
			}
		}
		out = kept
	}
	if f.Level != "" {
		var kept []Buyer
		for _, b := range out {
			if b.Level == f.Level {
				kept = append(kept, b)
			}
		}
		out = kept
	}
	if f.IntentType != "" {
		var kept []Buyer
		for _, b := range out {
			if b.IntentType == f.IntentType {
				kept = append(kept, b)
			}
		}
		out = kept
	}
	if f.Stage != "" {
		var kept []Buyer
		for _, b := range out {
			if b.Stage == f.Stage {
				kept = append(kept, b)
			}
		}
		out = kept
	}
	return out
}

// SortBuyers orders the list in place by the given sort key. Timestamps
// are compared lexicographically, which is safe for the fixed-width
// zero-padded format NowISO writes.
func SortBuyers(buyers []Buyer, sortBy string) {
	sort.SliceStable(buyers, func(i, j int) bool {
		switch sortBy {
		case SortCreatedAtAsc:
			return buyers[i].CreatedAt < buyers[j].CreatedAt
		case SortNameAsc:
			return buyers[i].Name < buyers[j].Name
		case SortNameDesc:
			return buyers[i].Name > buyers[j].Name
		default: // created_at_desc
			return buyers[i].CreatedAt > buyers[j].CreatedAt
		}
	})
}

// SellerFilter holds the query parameters of the seller list page.
type SellerFilter struct {
	Q     string
	Level string
	Stage string
}

// FilterSellers applies keyword match over name and phone, then equality
// filters on level and stage.
func FilterSellers(sellers []Seller, f SellerFilter) []Seller {
	out := sellers
	if f.Q != "" {
		var kept []Seller
		for _, s := range out {
			if strings.Contains(s.Name, f.Q) || strings.Contains(s.Phone, f.Q) {
				kept = append(kept, s)
			}
		}
		out = kept
	}
	if f.Level != "" {
		var kept []Seller
		for _, s := range out {
			if s.Level == f.Level {
				kept = append(kept, s)
			}
		}
		out = kept
	}
	if f.Stage != "" {
		var kept []Seller
		for _, s := range out {
			if s.Stage == f.Stage {
				kept = append(kept, s)
			}
		}
		out = kept
	}
	return out
}

// SortSellers orders the list in place by the given sort key.
func SortSellers(sellers []Seller, sortBy string) {
	sort.SliceStable(sellers, func(i, j int) bool {
		switch sortBy {
		case SortCreatedAtAsc:
			return sellers[i].CreatedAt < sellers[j].CreatedAt
		case SortNameAsc:
			return sellers[i].Name < sellers[j].Name
		case SortNameDesc:
			return sellers[i].Name > sellers[j].Name
		default:
			return sellers[i].CreatedAt > sellers[j].CreatedAt
		}
	})
}

// PostFilter holds the query parameters of the blog list page.
type PostFilter struct {
	Q        string
	Category string
	Status   string
}

// FilterPosts applies a case-insensitive keyword match over title, plain
// text, tags and joined categories, then category containment and status
// equality filters.
func FilterPosts(posts []BlogPost, f PostFilter) []BlogPost {
	out := posts
	if f.Q != "" {
		q := strings.ToLower(f.Q)
		var kept []BlogPost
		for _, p := range out {
			cats := strings.ToLower(strings.Join(p.CategoryList(), ", "))
			if strings.Contains(strings.ToLower(p.Title), q) ||
				strings.Contains(strings.ToLower(p.ContentText), q) ||
				strings.Contains(strings.ToLower(p.Tags), q) ||
				strings.Contains(cats, q) {
				kept = append(kept, p)
			}
		}
		out = kept
	}
	if f.Category != "" {
		var kept []BlogPost
		for _, p := range out {
			for _, c := range p.CategoryList() {
				if c == f.Category {
					kept = append(kept, p)
					break
				}
			}
		}
		out = kept
	}
	if f.Status != "" {
		var kept []BlogPost
		for _, p := range out {
			if p.Status == f.Status {
				kept = append(kept, p)
			}
		}
		out = kept
	}
	return out
}

// SortPosts orders the list in place; blog posts only sort by creation
// time.
func SortPosts(posts []BlogPost, sortBy string) {
	sort.SliceStable(posts, func(i, j int) bool {
		if sortBy == SortCreatedAtAsc {
			return posts[i].CreatedAt < posts[j].CreatedAt
		}
		return posts[i].CreatedAt > posts[j].CreatedAt
	})
}

// SortFollowups orders a contact log newest first by contact time.
func SortFollowups(followups []Followup) {
	sort.SliceStable(followups, func(i, j int) bool {
		return followups[i].ContactTime > followups[j].ContactTime
	})
}

// AllCategories collects the distinct categories used across all posts,
// sorted, for the sidebar and the edit form's checkbox list.
func AllCategories(posts []BlogPost) []string {
	seen := make(map[string]bool)
	var cats []string
	for _, p := range posts {
		for _, c := range p.CategoryList() {
			c = strings.TrimSpace(c)
			if c == "" || seen[c] {
				continue
			}
			seen[c] = true
			cats = append(cats, c)
		}
	}
	sort.Strings(cats)
	return cats
}

// AllStatuses collects the distinct non-empty statuses present in the
// given posts, sorted.
func AllStatuses(posts []BlogPost) []string {
	seen := make(map[string]bool)
	var statuses []string
	for _, p := range posts {
		if p.Status == "" || seen[p.Status] {
			continue
		}
		seen[p.Status] = true
		statuses = append(statuses, p.Status)
	}
	sort.Strings(statuses)
	return statuses
}
