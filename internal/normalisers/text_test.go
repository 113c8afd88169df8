package normalisers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Geburtshilfe", "geburtshilfe"},
		{"Übergabe", "ubergabe"},
		{"Café Crème", "cafe creme"},
		{"ÄÖÜ äöü", "aou aou"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, Fold(tt.in))
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected []string
	}{
		{"empty", "", nil},
		{"whitespace only", "  \t\n ", nil},
		{"single", "Geburt", []string{"geburt"}},
		{"multiple with extra spaces", "  Sectio   Leitlinie ", []string{"sectio", "leitlinie"}},
		{"diacritics", "Schädel Röntgen", []string{"schadel", "rontgen"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.in))
		})
	}
}

func TestIsWordStart(t *testing.T) {
	s := "leitlinie geburt-hilfe"
	assert.True(t, IsWordStart(s, 0))
	assert.False(t, IsWordStart(s, 3))
	assert.True(t, IsWordStart(s, 10))
	assert.True(t, IsWordStart(s, 17))
}

func TestIndexAtWordBoundary(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		token    string
		expected int
	}{
		{"after space", "leitlinie geburt", "geburt", 10},
		{"at start is not elsewhere", "geburt leitlinie", "geburt", -1},
		{"inside word only", "vorgeburtlich", "geburt", -1},
		{"second occurrence at boundary", "vorgeburt geburt", "geburt", 10},
		{"after punctuation", "sop/geburt", "geburt", 4},
		{"empty token", "abc", "", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IndexAtWordBoundary(tt.s, tt.token))
		})
	}
}
