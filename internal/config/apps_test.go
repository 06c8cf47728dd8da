package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistry_MissingFileUsesDefault(t *testing.T) {
	reg, err := LoadRegistry(t.TempDir())
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}
	if len(reg.Banks) != 3 {
		t.Errorf("default registry has %d banks, want 3", len(reg.Banks))
	}
	if reg.AppID("Commercial Bank of Ethiopia") == "" {
		t.Error("default registry missing CBE app id")
	}
}

func TestLoadRegistry_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	data := `banks:
  Awash Bank:
    app_id: com.awashbank.mobile
    target_reviews: 250
`
	if err := os.WriteFile(filepath.Join(dir, "apps.yaml"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadRegistry(dir)
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}
	if got := reg.AppID("Awash Bank"); got != "com.awashbank.mobile" {
		t.Errorf("AppID() = %q, want com.awashbank.mobile", got)
	}
	if reg.Banks["Awash Bank"].TargetReviews != 250 {
		t.Errorf("target_reviews = %d, want 250", reg.Banks["Awash Bank"].TargetReviews)
	}
}

func TestLoadRegistry_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "apps.yaml"), []byte("banks: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRegistry(dir); err == nil {
		t.Error("LoadRegistry() accepted malformed yaml")
	}
}

func TestAppID_UnknownBank(t *testing.T) {
	if got := DefaultRegistry().AppID("No Such Bank"); got != "" {
		t.Errorf("AppID() = %q, want empty", got)
	}
}
