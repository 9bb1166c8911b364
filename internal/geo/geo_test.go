package geo

import "testing"

func TestOpen_EmptyPath_ReturnsNoOpReader(t *testing.T) {
	r, err := Open("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r == nil {
		t.Fatal("expected non-nil Reader")
	}
	if r.Enabled() {
		t.Error("Enabled() = true, want false without a database")
	}
}

func TestOpen_MissingFile(t *testing.T) {
	if _, err := Open("/nonexistent/GeoLite2-Country.mmdb"); err == nil {
		t.Fatal("expected error for missing database file")
	}
}

func TestCountry_NoOpReader(t *testing.T) {
	r, _ := Open("")
	for _, ip := range []string{"8.8.8.8", "not-an-ip", ""} {
		if got := r.Country(ip); got != "" {
			t.Errorf("Country(%q) = %q, want empty", ip, got)
		}
	}
}

func TestNilReader(t *testing.T) {
	var r *Reader
	if got := r.Country("8.8.8.8"); got != "" {
		t.Errorf("Country = %q, want empty", got)
	}
	r.Close() // should not panic
}
