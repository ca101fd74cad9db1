package slug

import "testing"

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple product", "Classic Red Velvet Bangles", "classic-red-velvet-bangles"},
		{"spaced hyphen", "Bridal Earrings - Jhumka Style", "bridal-earrings-jhumka-style"},
		{"ampersand", "Pearls & Kundan Set", "pearls-kundan-set"},
		{"parentheses", "Velvet Bangles (Set of 6)", "velvet-bangles-set-of-6"},
		{"accents folded", "Café Crème Choker", "cafe-creme-choker"},
		{"umlauts folded", "Über Brücke Ring", "uber-brucke-ring"},
		{"emoji dropped", "Maang Tikka 👑", "maang-tikka"},
		{"tabs and newlines", "gold\tthread\nchoker", "gold-thread-choker"},
		{"surrounding spaces", "   ring  ", "ring"},
		{"hyphen runs", "--set -- of -- two--", "set-of-two"},
		{"single hyphen preserved", "hand-made bracelet", "hand-made-bracelet"},
		{"numbers", "Set of 12", "set-of-12"},
		{"empty", "", ""},
		{"only symbols", "!@#$%^&*()", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		ref    string
		want   int64
		wantOK bool
	}{
		{"4", 4, true},
		{"4-gold-thread-choker-necklace", 4, true},
		{"1700000000000-kundan-ring", 1700000000000, true},
		{"4-", 4, true},
		{"gold-4", 0, false},
		{"", 0, false},
		{"-4", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, ok := ParseID(tt.ref)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseID(%q) = (%d, %v), want (%d, %v)", tt.ref, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
