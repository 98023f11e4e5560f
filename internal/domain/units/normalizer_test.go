package units

import "testing"

func TestNormalizeKnownUnits(t *testing.T) {
	n := NewNormalizer(0, 0) // defaults: 1024 MiB/GB, 1000 MB/GB

	tests := []struct {
		name  string
		value float64
		unit  string
		want  float64
	}{
		{"mib binary divisor", 1024, "mib", 1.0},
		{"mib two gigabytes", 2048, "MiB", 2.0},
		{"mib fractional result", 512, "mib", 0.5},
		{"mb decimal divisor", 1000, "mb", 1.0},
		{"gb passthrough", 40, "gb", 40},
		{"empty unit passthrough", 16, "", 16},
		{"unit with spaces", 1024, " MiB ", 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warn := n.Normalize(tt.value, tt.unit)
			if warn != nil {
				t.Fatalf("unexpected warning: %v", warn)
			}
			if got != tt.want {
				t.Fatalf("Normalize(%v, %q) = %v, want %v", tt.value, tt.unit, got, tt.want)
			}
		})
	}
}

func TestNormalizeUnknownUnitPassesThroughWithWarning(t *testing.T) {
	n := NewNormalizer(0, 0)

	got, warn := n.Normalize(77, "parsecs")
	if got != 77 {
		t.Fatalf("unknown unit changed the value: %v", got)
	}
	if warn == nil {
		t.Fatal("expected a warning for an unknown unit")
	}
	if warn.Unit != "parsecs" {
		t.Fatalf("warning carries unit %q", warn.Unit)
	}
}

func TestNormalizerCustomDivisors(t *testing.T) {
	n := NewNormalizer(1000, 1024)

	if got, _ := n.Normalize(1000, "mib"); got != 1.0 {
		t.Fatalf("custom MiB divisor ignored: %v", got)
	}
	if got, _ := n.Normalize(1024, "mb"); got != 1.0 {
		t.Fatalf("custom MB divisor ignored: %v", got)
	}
}

func TestFromHeader(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Capacity MiB", "mib"},
		{"Total disk capacity MiB", "mib"},
		{"memory_size gb", "gb"},
		{"Free MB", "mb"},
		{"CPUs", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FromHeader(tt.header); got != tt.want {
			t.Errorf("FromHeader(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
