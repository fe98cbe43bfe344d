package naming

import (
	"regexp"
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"k6_script_sample_2", "k6-script-sample-2"},
		{"MyScript", "myscript"},
		{"hello world", "hello-world"},
		{"a__b", "a-b"},
		{"--weird--", "weird"},
		{"..dots..", "dots"},
		{"a..b", "a.b"},
		{"a!!b", "a-b"},
		{"UPPER_lower.Mixed", "upper-lower.mixed"},
		{"", ""},
		{"---", ""},
		{"1.2.3", "1.2.3"},
	}

	for _, tc := range cases {
		if got := Sanitize(tc.in); got != tc.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"k6_script_sample_2",
		"Weird  Name!!",
		"__--..__",
		"already-clean.name",
		"mix_of.EVERY-thing 123",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestSanitize_Invariants(t *testing.T) {
	inputs := []string{
		"k6_script_sample_2.js",
		"!!!leading and trailing!!!",
		"dots...and---dashes",
		"x",
		"-.-.-",
	}

	for _, in := range inputs {
		s := Sanitize(in)
		if s == "" {
			continue
		}
		if strings.HasPrefix(s, "-") || strings.HasPrefix(s, ".") {
			t.Errorf("Sanitize(%q) = %q starts with separator", in, s)
		}
		if strings.HasSuffix(s, "-") || strings.HasSuffix(s, ".") {
			t.Errorf("Sanitize(%q) = %q ends with separator", in, s)
		}
		if strings.Contains(s, "--") || strings.Contains(s, "..") {
			t.Errorf("Sanitize(%q) = %q contains a separator run", in, s)
		}
	}
}

func TestArchiveFileName(t *testing.T) {
	name := ArchiveFileName("/tmp/scripts/k6_script_sample_2.js")

	pattern := regexp.MustCompile(`^archive-k6-script-sample-2-\d+\.tar$`)
	if !pattern.MatchString(name) {
		t.Errorf("ArchiveFileName produced %q, want match for %v", name, pattern)
	}
}

func TestArchiveFileName_DistinctWithinProcess(t *testing.T) {
	a := ArchiveFileName("sample.js")
	b := ArchiveFileName("sample.js")

	if a == b {
		t.Errorf("two archive filenames for the same script collided: %q", a)
	}
}

func TestConfigMapName(t *testing.T) {
	name := ArchiveFileName("k6_script_sample_2.js")
	cm := ConfigMapName(name)

	pattern := regexp.MustCompile(`^archive-k6-script-sample-2-\d+$`)
	if !pattern.MatchString(cm) {
		t.Errorf("ConfigMapName(%q) = %q, want match for %v", name, cm, pattern)
	}

	// Deriving the name again from itself must not change it.
	if Sanitize(cm) != cm {
		t.Errorf("ConfigMapName %q is not a sanitization fixed point", cm)
	}
}
