package risk

import (
	"errors"
	"testing"

	"github.com/guardiao60/linkguard/internal/domain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips tracking params",
			in:   "http://bit.ly/abc?utm_source=x",
			want: "http://bit.ly/abc",
		},
		{
			name: "keeps other params in order",
			in:   "https://example.com/p?b=2&utm_medium=mail&a=1",
			want: "https://example.com/p?b=2&a=1",
		},
		{
			name: "clears fragment",
			in:   "https://example.com/page#section",
			want: "https://example.com/page",
		},
		{
			name: "lowercases host only",
			in:   "https://EXAMPLE.com/PaTh?Q=Vv",
			want: "https://example.com/PaTh?Q=Vv",
		},
		{
			name: "trims whitespace",
			in:   "  https://example.com/x \n",
			want: "https://example.com/x",
		},
		{
			name: "keeps port",
			in:   "http://Example.com:8080/x",
			want: "http://example.com:8080/x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if err != nil {
				t.Fatalf("Normalize(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"http://bit.ly/abc?utm_source=x&id=9#frag",
		"https://Secure.Banco-Itau.top/login?senha=1",
		"https://example.com/",
	}

	for _, in := range inputs {
		once, err := Normalize(in)
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", in, err)
		}
		twice, err := Normalize(once)
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", once, err)
		}
		if once != twice {
			t.Errorf("not idempotent: first=%q second=%q", once, twice)
		}
	}
}

func TestNormalize_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"not a url",
		"/relative/path",
		"example.com/missing-scheme",
		"http://",
	}

	for _, in := range inputs {
		if _, err := Normalize(in); !errors.Is(err, domain.ErrInvalidURL) {
			t.Errorf("Normalize(%q): expected ErrInvalidURL, got %v", in, err)
		}
	}
}
