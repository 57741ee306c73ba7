package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPersonaFromTraits(t *testing.T) {
	tests := []struct {
		name   string
		traits map[string]string
		want   PersonaTraits
	}{
		{
			name: "all fields present",
			traits: map[string]string{
				"name": "Alex", "occupation": "Engineer", "status": "Single",
				"location": "Berlin", "archetype": "Explorer", "personality": "Curious",
				"behavior": "Helpful", "habits": "Hiking", "goals": "Learn Go",
				"needs": "Recognition", "frustrations": "Slow builds",
			},
			want: PersonaTraits{
				Name: "Alex", Occupation: "Engineer", Status: "Single",
				Location: "Berlin", Archetype: "Explorer", Personality: "Curious",
				Behavior: "Helpful", Habits: "Hiking", Goals: "Learn Go",
				Needs: "Recognition", Frustrations: "Slow builds",
			},
		},
		{
			name:   "missing fields default to the sentinel",
			traits: map[string]string{"name": "Alex"},
			want: PersonaTraits{
				Name: "Alex", Occupation: Unknown, Status: Unknown,
				Location: Unknown, Archetype: Unknown, Personality: Unknown,
				Behavior: Unknown, Habits: Unknown, Goals: Unknown,
				Needs: Unknown, Frustrations: Unknown,
			},
		},
		{
			name:   "empty values default to the sentinel",
			traits: map[string]string{"name": "", "location": "Berlin"},
			want: PersonaTraits{
				Name: Unknown, Occupation: Unknown, Status: Unknown,
				Location: "Berlin", Archetype: Unknown, Personality: Unknown,
				Behavior: Unknown, Habits: Unknown, Goals: Unknown,
				Needs: Unknown, Frustrations: Unknown,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PersonaFromTraits(tt.traits)
			if got != tt.want {
				t.Errorf("PersonaFromTraits() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFallbackPersona(t *testing.T) {
	p := FallbackPersona()
	if p.Personality != FallbackPersonalityNote {
		t.Errorf("Personality = %q, want the fallback note", p.Personality)
	}
	for field, value := range map[string]string{
		"Name": p.Name, "Occupation": p.Occupation, "Status": p.Status,
		"Location": p.Location, "Archetype": p.Archetype, "Behavior": p.Behavior,
		"Habits": p.Habits, "Goals": p.Goals, "Needs": p.Needs, "Frustrations": p.Frustrations,
	} {
		if value != Unknown {
			t.Errorf("%s = %q, want %q", field, value, Unknown)
		}
	}
}

func TestPersonaTraitsOmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(PersonaTraits{Name: "Alex"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"name":"Alex"`) {
		t.Errorf("marshaled persona missing name: %s", data)
	}
	if strings.Contains(string(data), "occupation") {
		t.Errorf("marshaled persona should omit empty fields: %s", data)
	}
}
