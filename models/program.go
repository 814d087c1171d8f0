package models

import "time"

// ProgramCategory is a closed set of wellness program categories.
// Clients key icons and styling off this tag rather than the title string.
type ProgramCategory string

const (
	CategoryTherapy     ProgramCategory = "therapy"
	CategoryNutrition   ProgramCategory = "nutrition"
	CategoryMindfulness ProgramCategory = "mindfulness"
	CategoryCoaching    ProgramCategory = "coaching"
	CategoryFitness     ProgramCategory = "fitness"
)

// ValidCategory reports whether c is one of the known program categories.
func ValidCategory(c ProgramCategory) bool {
	switch c {
	case CategoryTherapy, CategoryNutrition, CategoryMindfulness, CategoryCoaching, CategoryFitness:
		return true
	}
	return false
}

// Program is a purchasable wellness offering in the catalog.
type Program struct {
	ID               string          `bson:"id" json:"id"`
	Title            string          `bson:"title" json:"title"`
	Category         ProgramCategory `bson:"category" json:"category"`
	Price            float64         `bson:"price" json:"price"`
	OriginalPrice    float64         `bson:"original_price,omitempty" json:"originalPrice,omitempty"`
	DurationLabel    string          `bson:"duration_label" json:"durationLabel"` // e.g. "3 months"
	SessionsIncluded int             `bson:"sessions_included" json:"sessionsIncluded"`
	PractitionerType string          `bson:"practitioner_type" json:"practitionerType"` // e.g. "Licensed Therapist"
	Features         []string        `bson:"features" json:"features"`
	Benefits         []string        `bson:"benefits" json:"benefits"`
	IsActive         bool            `bson:"is_active" json:"isActive"`
	Popular          bool            `bson:"popular" json:"popular"`
	CreatedAt        time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time       `bson:"updated_at" json:"updatedAt"`
}
