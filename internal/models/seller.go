package models

// Seller is a sell-side lead stored in the "sellers" collection.
type Seller struct {
	ID              string   `firestore:"-" json:"id"`
	Name            string   `firestore:"name" json:"name"`
	Phone           string   `firestore:"phone" json:"phone"`
	Email           string   `firestore:"email" json:"email"`
	LineID          string   `firestore:"line_id" json:"line_id"`
	Address         string   `firestore:"address" json:"address"`
	PropertyType    string   `firestore:"property_type" json:"property_type"`
	Level           string   `firestore:"level" json:"level"`
	Stage           string   `firestore:"stage" json:"stage"`
	Reason          string   `firestore:"reason" json:"reason"`
	ExpectedPrice   string   `firestore:"expected_price" json:"expected_price"`
	MinPrice        string   `firestore:"min_price" json:"min_price"`
	Timeline        string   `firestore:"timeline" json:"timeline"`
	OccupancyStatus string   `firestore:"occupancy_status" json:"occupancy_status"`
	ContractEndDate string   `firestore:"contract_end_date" json:"contract_end_date"`
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

// Photos returns the photo URLs of the seller with the legacy scalar
// normalized in; the list wins over the scalar.
func (s *Seller) Photos() []string {
	return normalizePhotos(s.PhotoURLs, s.PhotoURL)
}

// SellerForm carries the trimmed form fields of a seller create/edit
// submission.
type SellerForm struct {
	Name            string `form:"name" validate:"required"`
	Phone           string `form:"phone"`
	Email           string `form:"email"`
	LineID          string `form:"line_id"`
	Address         string `form:"address"`
	PropertyType    string `form:"property_type"`
	Level           string `form:"level" validate:"omitempty,oneof=A B C"`
	Stage           string `form:"stage" validate:"omitempty,oneof=prospecting listed closed"`
	Reason          string `form:"reason"`
	ExpectedPrice   string `form:"expected_price"`
	MinPrice        string `form:"min_price"`
	Timeline        string `form:"timeline"`
	OccupancyStatus string `form:"occupancy_status"`
	ContractEndDate string `form:"contract_end_date"`
	Note            string `form:"note"`
}

// Fields returns the document fields written on create/update.
func (f *SellerForm) Fields() map[string]interface{} {
	return map[string]interface{}{
		"name":              f.Name,
		"phone":             f.Phone,
		"email":             f.Email,
		"line_id":           f.LineID,
		"address":           f.Address,
		"property_type":     f.PropertyType,
		"level":             f.Level,
		"stage":             f.Stage,
		"reason":            f.Reason,
		"expected_price":    f.ExpectedPrice,
		"min_price":         f.MinPrice,
		"timeline":          f.Timeline,
		"occupancy_status":  f.OccupancyStatus,
		"contract_end_date": f.ContractEndDate,
		"note":              f.Note,
	}
}

// Apply copies the form values onto a seller for form re-rendering.
func (f *SellerForm) Apply(s *Seller) {
	s.Name = f.Name
	s.Phone = f.Phone
	s.Email = f.Email
	s.LineID = f.LineID
	s.Address = f.Address
	s.PropertyType = f.PropertyType
	s.Level = f.Level
	s.Stage = f.Stage
	s.Reason = f.Reason
	s.ExpectedPrice = f.ExpectedPrice
	s.MinPrice = f.MinPrice
	s.Timeline = f.Timeline
	s.OccupancyStatus = f.OccupancyStatus
	s.ContractEndDate = f.ContractEndDate
	s.Note = f.Note
}
