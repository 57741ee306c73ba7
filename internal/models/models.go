package models

// PersonaTraits is the fixed trait schema inferred from a user's writing.
// Absent or undeterminable traits resolve to the Unknown sentinel; empty
// fields are dropped from JSON responses.
type PersonaTraits struct {
	Name         string `json:"name,omitempty"`
	Occupation   string `json:"occupation,omitempty"`
	Status       string `json:"status,omitempty"`
	Location     string `json:"location,omitempty"`
	Archetype    string `json:"archetype,omitempty"`
	Personality  string `json:"personality,omitempty"`
	Behavior     string `json:"behavior,omitempty"`
	Habits       string `json:"habits,omitempty"`
	Goals        string `json:"goals,omitempty"`
	Needs        string `json:"needs,omitempty"`
	Frustrations string `json:"frustrations,omitempty"`
}

// PersonaFromTraits maps extracted trait values into the fixed schema,
// filling every missing field with the Unknown sentinel. Keys outside the
// schema are ignored.
func PersonaFromTraits(traits map[string]string) PersonaTraits {
	return PersonaTraits{
		Name:         traitOr(traits, "name"),
		Occupation:   traitOr(traits, "occupation"),
		Status:       traitOr(traits, "status"),
		Location:     traitOr(traits, "location"),
		Archetype:    traitOr(traits, "archetype"),
		Personality:  traitOr(traits, "personality"),
		Behavior:     traitOr(traits, "behavior"),
		Habits:       traitOr(traits, "habits"),
		Goals:        traitOr(traits, "goals"),
		Needs:        traitOr(traits, "needs"),
		Frustrations: traitOr(traits, "frustrations"),
	}
}

// FallbackPersona is returned when no traits could be extracted at all.
func FallbackPersona() PersonaTraits {
	p := PersonaFromTraits(nil)
	p.Personality = FallbackPersonalityNote
	return p
}

func traitOr(traits map[string]string, key string) string {
	if v, ok := traits[key]; ok && v != "" {
		return v
	}
	return Unknown
}

type RedditUserRequest struct {
	Username string `json:"username"`
}

type ChatRequest struct {
	Persona map[string]string `json:"persona"`
	Message string            `json:"message"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type SavePersonaRequest struct {
	Username string            `json:"username"`
	Persona  map[string]string `json:"persona"`
}

type SavePersonaResponse struct {
	Filename string `json:"filename"`
	FileURL  string `json:"file_url"`
}
