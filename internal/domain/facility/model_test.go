package facility

import (
	"errors"
	"strings"
	"testing"
)

// TestFacility_Validate tests facility validation rules.
func TestFacility_Validate(t *testing.T) {
	tests := []struct {
		name    string
		f       Facility
		wantErr error
	}{
		{"valid pitch", Facility{Name: "Main Pitch", Type: TypePitch}, nil},
		{"valid gym", Facility{Name: "Gym", Type: TypeGym}, nil},
		{"empty name", Facility{Name: "  ", Type: TypeHall}, ErrEmptyName},
		{"name too long", Facility{Name: strings.Repeat("x", MaxNameLength+1), Type: TypeHall}, ErrNameTooLong},
		{"unknown type", Facility{Name: "Court", Type: "court"}, ErrInvalidType},
		{"multibyte name at limit", Facility{Name: strings.Repeat("Ú", MaxNameLength), Type: TypeHall}, nil},
		{"multibyte name too long", Facility{Name: strings.Repeat("Ú", MaxNameLength+1), Type: TypeHall}, ErrNameTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.f.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestFacility_Label tests the display label.
func TestFacility_Label(t *testing.T) {
	f := Facility{Name: "Main Pitch", Type: TypePitch}
	if got := f.Label(); got != "Main Pitch (Pitch)" {
		t.Errorf("Label() = %q", got)
	}
	unknown := Facility{Name: "Annex", Type: "annex"}
	if got := unknown.Label(); got != "Annex" {
		t.Errorf("Label() = %q, want bare name for unknown type", got)
	}
}

// TestDefaults_AreValid ensures the seeded facilities pass validation.
func TestDefaults_AreValid(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range Defaults {
		if err := f.Validate(); err != nil {
			t.Errorf("default facility %q invalid: %v", f.Name, err)
		}
		if seen[f.Name] {
			t.Errorf("duplicate default facility %q", f.Name)
		}
		seen[f.Name] = true
	}
}
