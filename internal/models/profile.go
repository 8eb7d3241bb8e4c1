package models

import (
	"fmt"
	"slices"
	"time"
)

// Profile is the demographic and financial snapshot a user saves at onboarding.
// A nil field means the user has not provided it; it is never the same as zero.
type Profile struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"user_id"`
	Name       string    `json:"name"`
	Age        *int      `json:"age"`
	Gender     *string   `json:"gender"`
	State      *string   `json:"state"`
	Income     *int64    `json:"income"`
	Occupation *string   `json:"occupation"`
	Caste      *string   `json:"caste"`
	Category   *string   `json:"category"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ProfileForm carries the user-editable fields of a Profile.
type ProfileForm struct {
	Name       string
	Age        *int
	Gender     *string
	State      *string
	Income     *int64
	Occupation *string
	Caste      *string
	Category   *string
}

// Apply copies the form fields onto p.
func (f ProfileForm) Apply(p *Profile) {
	p.Name = f.Name
	p.Age = f.Age
	p.Gender = f.Gender
	p.State = f.State
	p.Income = f.Income
	p.Occupation = f.Occupation
	p.Caste = f.Caste
	p.Category = f.Category
}

const (
	GenderMale        = "Male"
	GenderFemale      = "Female"
	GenderOther       = "Other"
	GenderUndisclosed = "Prefer not to say"

	CategoryGeneral = "General"
	CategoryOBC     = "OBC"
	CategorySC      = "SC"
	CategoryST      = "ST"
	CategoryEWS     = "EWS"
	CategoryOther   = "Other"
)

// Genders lists the accepted gender values.
var Genders = []string{GenderMale, GenderFemale, GenderOther, GenderUndisclosed}

// Categories lists the accepted social categories.
var Categories = []string{CategoryGeneral, CategoryOBC, CategorySC, CategoryST, CategoryEWS, CategoryOther}

// Occupations lists the accepted occupations.
var Occupations = []string{
	"Student", "Salaried Employee", "Business Owner", "Self-Employed", "Farmer",
	"Government Employee", "Private Sector Employee", "Homemaker", "Retired", "Unemployed", "Other",
}

// States lists Indian states and union territories.
var States = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh", "Goa", "Gujarat",
	"Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka", "Kerala", "Madhya Pradesh",
	"Maharashtra", "Manipur", "Meghalaya", "Mizoram", "Nagaland", "Odisha", "Punjab",
	"Rajasthan", "Sikkim", "Tamil Nadu", "Telangana", "Tripura", "Uttar Pradesh",
	"Uttarakhand", "West Bengal", "Andaman and Nicobar Islands", "Chandigarh",
	"Dadra and Nagar Haveli and Daman and Diu", "Delhi", "Jammu and Kashmir", "Ladakh",
	"Lakshadweep", "Puducherry",
}

// ValidationError names the first form field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Validate checks a sanitized form before it is saved. Unknown fields are
// always valid; enumerated fields must use one of the listed values.
func (f ProfileForm) Validate() error {
	if f.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if f.Age != nil && (*f.Age < 0 || *f.Age > 150) {
		return &ValidationError{Field: "age", Reason: "must be between 0 and 150"}
	}
	if f.Income != nil && *f.Income < 0 {
		return &ValidationError{Field: "income", Reason: "must not be negative"}
	}
	enums := []struct {
		field   string
		value   *string
		allowed []string
	}{
		{"gender", f.Gender, Genders},
		{"state", f.State, States},
		{"occupation", f.Occupation, Occupations},
		{"category", f.Category, Categories},
	}
	for _, e := range enums {
		if e.value != nil && !slices.Contains(e.allowed, *e.value) {
			return &ValidationError{Field: e.field, Reason: fmt.Sprintf("%q is not an accepted value", *e.value)}
		}
	}
	return nil
}
