package models

// Buyer is a buy-side lead stored in the "buyers" collection. All fields
// are stored as trimmed strings exactly as submitted; only Name is required.
type Buyer struct {
	ID              string   `firestore:"-" json:"id"`
	Name            string   `firestore:"name" json:"name"`
	Phone           string   `firestore:"phone" json:"phone"`
	Email           string   `firestore:"email" json:"email"`
	LineID          string   `firestore:"line_id" json:"line_id"`
	Source          string   `firestore:"source" json:"source"`
	Level           string   `firestore:"level" json:"level"`
	IntentType      string   `firestore:"intent_type" json:"intent_type"`
	Stage           string   `firestore:"stage" json:"stage"`
	RentMin         string   `firestore:"rent_min" json:"rent_min"`
	RentMax         string   `firestore:"rent_max" json:"rent_max"`
	BudgetMin       string   `firestore:"budget_min" json:"budget_min"`
	BudgetMax       string   `firestore:"budget_max" json:"budget_max"`
	PreferredAreas  string   `firestore:"preferred_areas" json:"preferred_areas"`
	PropertyType    string   `firestore:"property_type" json:"property_type"`
	RoomRange       string   `firestore:"room_range" json:"room_range"`
	CarNeed         string   `firestore:"car_need" json:"car_need"`
	Job             string   `firestore:"job" json:"job"`
	FamilyInfo      string   `firestore:"family_info" json:"family_info"`
	RequirementMust string   `firestore:"requirement_must" json:"requirement_must"`
	RequirementNice string   `firestore:"requirement_nice" json:"requirement_nice"`
	OtherBackground string   `firestore:"other_background" json:"other_background"`
	Note            string   `firestore:"note" json:"note"`
	PhotoURL        string   `firestore:"photo_url" json:"photo_url"`   // legacy single-photo field
	PhotoURLs       []string `firestore:"photo_urls" json:"photo_urls"` // current multi-photo field
	CreatedAt       string   `firestore:"created_at" json:"created_at"`
	CreatedByID     string   `firestore:"created_by_id" json:"created_by_id"`
	CreatedByName   string   `firestore:"created_by_name" json:"created_by_name"`
	UpdatedAt       string   `firestore:"updated_at" json:"updated_at"`
	UpdatedByID     string   `firestore:"updated_by_id" json:"updated_by_id"`
	UpdatedByName   string   `firestore:"updated_by_name" json:"updated_by_name"`
}

// Photos returns the photo URLs of the buyer, normalizing the legacy
// single-URL field. The list wins over the scalar; the stored value is
// never mutated.
func (b *Buyer) Photos() []string {
	return normalizePhotos(b.PhotoURLs, b.PhotoURL)
}

// BuyerForm carries the trimmed form fields of a buyer create/edit
// submission. Enum fields are closed: unknown values are rejected at the
// write boundary instead of being stored verbatim.
type BuyerForm struct {
	Name            string `form:"name" validate:"required"`
	Phone           string `form:"phone"`
	Email           string `form:"email"`
	LineID          string `form:"line_id"`
	Source          string `form:"source"`
	Level           string `form:"level" validate:"omitempty,oneof=A B C"`
	IntentType      string `form:"intent_type" validate:"omitempty,oneof=buy rent both"`
	Stage           string `form:"stage" validate:"omitempty,oneof=contact viewing negotiation closed"`
	RentMin         string `form:"rent_min"`
	RentMax         string `form:"rent_max"`
	BudgetMin       string `form:"budget_min"`
	BudgetMax       string `form:"budget_max"`
	PreferredAreas  string `form:"preferred_areas"`
	PropertyType    string `form:"property_type"`
	RoomRange       string `form:"room_range"`
	CarNeed         string `form:"car_need"`
	Job             string `form:"job"`
	FamilyInfo      string `form:"family_info"`
	RequirementMust string `form:"requirement_must"`
	RequirementNice string `form:"requirement_nice"`
	OtherBackground string `form:"other_background"`
	Note            string `form:"note"`
}

// Fields returns the document fields written on create/update. The caller
// adds audit stamps and photo fields on top.
func (f *BuyerForm) Fields() map[string]interface{} {
	return map[string]interface{}{
		"name":             f.Name,
		"phone":            f.Phone,
		"email":            f.Email,
		"line_id":          f.LineID,
		"source":           f.Source,
		"level":            f.Level,
		"intent_type":      f.IntentType,
		"stage":            f.Stage,
		"rent_min":         f.RentMin,
		"rent_max":         f.RentMax,
		"budget_min":       f.BudgetMin,
		"budget_max":       f.BudgetMax,
		"preferred_areas":  f.PreferredAreas,
		"property_type":    f.PropertyType,
		"room_range":       f.RoomRange,
		"car_need":         f.CarNeed,
		"job":              f.Job,
		"family_info":      f.FamilyInfo,
		"requirement_must": f.RequirementMust,
		"requirement_nice": f.RequirementNice,
		"other_background": f.OtherBackground,
		"note":             f.Note,
	}
}

// Apply copies the form values onto a buyer, used to echo the submitted
// input back into a re-rendered form after a validation failure.
func (f *BuyerForm) Apply(b *Buyer) {
	b.Name = f.Name
	b.Phone = f.Phone
	b.Email = f.Email
	b.LineID = f.LineID
	b.Source = f.Source
	b.Level = f.Level
	b.IntentType = f.IntentType
	b.Stage = f.Stage
	b.RentMin = f.RentMin
	b.RentMax = f.RentMax
	b.BudgetMin = f.BudgetMin
	b.BudgetMax = f.BudgetMax
	b.PreferredAreas = f.PreferredAreas
	b.PropertyType = f.PropertyType
	b.RoomRange = f.RoomRange
	b.CarNeed = f.CarNeed
	b.Job = f.Job
	b.FamilyInfo = f.FamilyInfo
	b.RequirementMust = f.RequirementMust
	b.RequirementNice = f.RequirementNice
	b.OtherBackground = f.OtherBackground
	b.Note = f.Note
}
