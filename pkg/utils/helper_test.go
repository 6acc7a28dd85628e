package utils

import (
	"math"
	"strings"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Asha@Example.COM "); got != "asha@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}

func TestEmailLocalPart(t *testing.T) {
	cases := map[string]string{
		"asha@example.com": "asha",
		"no-at-sign":       "no-at-sign",
		"@example.com":     "@example.com",
	}
	for in, want := range cases {
		if got := EmailLocalPart(in); got != want {
			t.Errorf("EmailLocalPart(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToMinorUnits(t *testing.T) {
	cases := map[float64]int64{
		0:        0,
		1:        100,
		0.3:      30,
		12500.50: 1250050,
	}
	for in, want := range cases {
		if got := ToMinorUnits(in); got != want {
			t.Errorf("ToMinorUnits(%v) = %d, want %d", in, got, want)
		}
	}

	if got := ToMinorUnits(math.NaN()); got != 0 {
		t.Errorf("ToMinorUnits(NaN) = %d, want 0", got)
	}
	if got := ToMinorUnits(math.Inf(1)); got != 0 {
		t.Errorf("ToMinorUnits(+Inf) = %d, want 0", got)
	}
}

func TestGenerateReceiptRefBounded(t *testing.T) {
	ref := GenerateReceiptRef("3f8b6a0a-9d3c-4e5f-8a7b-0c1d2e3f4a5b")

	if len(ref) > 40 {
		t.Errorf("receipt ref %q exceeds 40 chars", ref)
	}
	if !strings.HasPrefix(ref, "trip_") {
		t.Errorf("receipt ref %q missing prefix", ref)
	}
}

func TestGenerateTempCredential(t *testing.T) {
	a, err := GenerateTempCredential()
	if err != nil {
		t.Fatalf("GenerateTempCredential: %v", err)
	}
	b, err := GenerateTempCredential()
	if err != nil {
		t.Fatalf("GenerateTempCredential: %v", err)
	}

	if a == b {
		t.Errorf("two credentials identical")
	}
	if len(a) < 20 {
		t.Errorf("credential %q too short", a)
	}
}
