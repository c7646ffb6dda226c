package textproc

import "testing"

func TestNormalize_CollapsesWhitespaceAndCase(t *testing.T) {
	a := Normalize("Quick sort is an efficient algorithm.")
	b := Normalize("quick   sort IS an efficient algorithm")

	if a != b {
		t.Errorf("expected equal normalized texts, got %q and %q", a, b)
	}
	if a != "quick sort is an efficient algorithm" {
		t.Errorf("unexpected normalized form: %q", a)
	}
}

func TestNormalize_DifferentTextsStayDifferent(t *testing.T) {
	a := Normalize("Quick sort is an efficient algorithm.")
	b := Normalize("Trees and graphs store data.")

	if a == b {
		t.Error("different texts must not normalize identically")
	}
}

func TestNormalize_StripsPunctuation(t *testing.T) {
	got := Normalize("Hello, world! 123\t\n ok")
	want := "hello world 123 ok"

	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	once := Normalize("  Some TEXT,  with   noise!  ")
	twice := Normalize(once)

	if once != twice {
		t.Errorf("normalization must be idempotent: %q vs %q", once, twice)
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	if got := Normalize("   \t\n  "); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestFingerprint_EqualForEqualNormalizedTexts(t *testing.T) {
	a := Fingerprint(Normalize("Quick sort is an efficient algorithm."))
	b := Fingerprint(Normalize("quick   sort IS an efficient algorithm"))

	if a != b {
		t.Errorf("expected equal fingerprints, got %s and %s", a, b)
	}
}

func TestFingerprint_Format(t *testing.T) {
	fp := Fingerprint("quick sort is an efficient algorithm")

	if len(fp) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(fp))
	}
	for _, r := range fp {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			t.Fatalf("unexpected character %q in fingerprint", r)
		}
	}
}

func TestFingerprint_DifferentForDifferentTexts(t *testing.T) {
	a := Fingerprint(Normalize("Quick sort is an efficient algorithm."))
	b := Fingerprint(Normalize("Trees and graphs store data."))

	if a == b {
		t.Error("different normalized texts must produce different fingerprints")
	}
}
