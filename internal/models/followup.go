package models

import "time"

// Followup is a contact-log entry owned by exactly one buyer or seller.
// Buyer followups live in "buyer_followups" keyed by buyer_id, seller
// followups in "seller_followups" keyed by seller_id; the parent id is
// mapped onto ParentID by the repository.
type Followup struct {
	ID              string `firestore:"-" json:"id"`
	ParentID        string `firestore:"-" json:"parent_id"`
	ContactTime     string `firestore:"contact_time" json:"contact_time"`
	Channel         string `firestore:"channel" json:"channel"`
	Content         string `firestore:"content" json:"content"`
	NextAction      string `firestore:"next_action" json:"next_action"`
	NextContactDate string `firestore:"next_contact_date" json:"next_contact_date"`
	CreatedAt       string `firestore:"created_at" json:"created_at"`
	CreatedByID     string `firestore:"created_by_id" json:"created_by_id"`
	CreatedByName   string `firestore:"created_by_name" json:"created_by_name"`
}

// FollowupForm carries the trimmed form fields of a followup submission.
// A blank contact time is filled with the current local time.
type FollowupForm struct {
	ContactTime     string `form:"contact_time"`
	Channel         string `form:"channel"`
	Content         string `form:"content"`
	NextAction      string `form:"next_action"`
	NextContactDate string `form:"next_contact_date"`
}

// Fields returns the editable document fields of a followup.
func (f *FollowupForm) Fields() map[string]interface{} {
	contactTime := f.ContactTime
	if contactTime == "" {
		contactTime = time.Now().Format("2006-01-02 15:04")
	}
	return map[string]interface{}{
		"contact_time":      contactTime,
		"channel":           f.Channel,
		"content":           f.Content,
		"next_action":       f.NextAction,
		"next_contact_date": f.NextContactDate,
	}
}
