package config

import "testing"

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"Arabic", Arabic, false},
		{"ar", Arabic, false},
		{" HEBREW ", Hebrew, false},
		{"he", Hebrew, false},
		{"English", English, false},
		{"EN", English, false},
		{"fr", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLanguage(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLanguage(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLanguage(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if len(Languages()) != 3 || Hebrew.Name() != "Hebrew" {
		t.Errorf("Languages() = %v", Languages())
	}
}
