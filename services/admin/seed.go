package admin

import "mindhaven/models"

// starterPrograms is the catalog seeded on first boot. Administrators
// edit or deactivate these afterwards through the catalog API.
var starterPrograms = []models.Program{
	{
		Title:            "Individual Therapy",
		Category:         models.CategoryTherapy,
		Price:            249,
		OriginalPrice:    299,
		DurationLabel:    "3 months",
		SessionsIncluded: 12,
		PractitionerType: "Licensed Therapist",
		Features:         []string{"Weekly 1:1 sessions", "Private consultation room", "Flexible scheduling"},
		Benefits:         []string{"Reduce stress and anxiety", "Build coping skills"},
		IsActive:         true,
		Popular:          true,
	},
	{
		Title:            "Nutrition Coaching",
		Category:         models.CategoryNutrition,
		Price:            149,
		DurationLabel:    "2 months",
		SessionsIncluded: 8,
		PractitionerType: "Registered Dietitian",
		Features:         []string{"Personalized meal planning", "Bi-weekly check-ins"},
		Benefits:         []string{"Sustainable eating habits"},
		IsActive:         true,
	},
	{
		Title:            "Mindfulness Foundations",
		Category:         models.CategoryMindfulness,
		Price:            99,
		DurationLabel:    "6 weeks",
		SessionsIncluded: 6,
		PractitionerType: "Mindfulness Coach",
		Features:         []string{"Guided meditation sessions", "Daily practice plan"},
		Benefits:         []string{"Improve focus", "Better sleep"},
		IsActive:         true,
	},
}
