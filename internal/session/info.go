package session

import "strings"

type requiredField struct {
	label string
	value func(p *Profile) bool
}

var requiredFields = []requiredField{
	{label: "Full Name", value: func(p *Profile) bool { return p.FullName != "" }},
	{label: "Email Address", value: func(p *Profile) bool { return p.Email != "" }},
	{label: "Phone Number", value: func(p *Profile) bool { return p.Phone != "" }},
	{label: "Years of Experience", value: func(p *Profile) bool { return p.YearsExp != "" }},
	{label: "Desired Position(s)", value: func(p *Profile) bool { return p.DesiredPositions != "" }},
	{label: "Current Location", value: func(p *Profile) bool { return p.Location != "" }},
	{label: "Tech Stack (comma-separated)", value: func(p *Profile) bool { return len(p.TechStack) > 0 }},
}

// MissingFields lists the labels of the profile fields that are still empty.
func (s *State) MissingFields() []string {
	missing := make([]string, 0)
	for _, f := range requiredFields {
		if !f.value(&s.Profile) {
			missing = append(missing, f.label)
		}
	}
	return missing
}

// InfoPrompt asks the candidate for whatever is still missing.
func (s *State) InfoPrompt() string {
	missing := s.MissingFields()
	if len(missing) == 0 {
		return "All candidate info collected. Would you like me to generate technical questions based on the provided tech stack?"
	}
	return "Please provide: " + strings.Join(missing, ", ")
}
