package model

type Campaign struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	StartDate   Date    `json:"start_date"`
	EndDate     Date    `json:"end_date"`
	Budget      float64 `json:"budget"`
	Status      bool    `json:"status"` // true = active, false = inactive
}

// CampaignPatch carries a partial update. Nil fields are left untouched by
// the repository; Description is applied only when DescriptionSet is true so
// an explicit null can clear it.
type CampaignPatch struct {
	Name           *string
	Description    *string
	DescriptionSet bool
	StartDate      *Date
	EndDate        *Date
	Budget         *float64
	Status         *bool
}

// IsEmpty reports whether the patch would change no columns.
func (p CampaignPatch) IsEmpty() bool {
	return p.Name == nil && !p.DescriptionSet && p.StartDate == nil &&
		p.EndDate == nil && p.Budget == nil && p.Status == nil
}
