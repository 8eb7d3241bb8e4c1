package dto

import (
	"strings"

	"github.com/aarthiksaathi/aarthik-be/internal/models"
)

// ProfileRequest is the body of PUT /profile. Omitted, null and blank fields
// all mean "not provided".
type ProfileRequest struct {
	Name       string  `json:"name"`
	Age        *int    `json:"age"`
	Gender     *string `json:"gender"`
	State      *string `json:"state"`
	Income     *int64  `json:"income"`
	Occupation *string `json:"occupation"`
	Caste      *string `json:"caste"`
	Category   *string `json:"category"`
}

// Form trims every string and turns blanks into unknowns.
func (r ProfileRequest) Form() models.ProfileForm {
	return models.ProfileForm{
		Name:       strings.TrimSpace(r.Name),
		Age:        r.Age,
		Gender:     optional(r.Gender),
		State:      optional(r.State),
		Income:     r.Income,
		Occupation: optional(r.Occupation),
		Caste:      optional(r.Caste),
		Category:   optional(r.Category),
	}
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
