package config

import (
	"encoding/json"
	"os"
	"testing"
)

func TestValidateAndAddDefaults(t *testing.T) {
	// Missing source base URL is the only fatal omission
	cnf := Configuration{
		ProjectName: "",
		Source:      SourceConfig{BaseUrl: ""},
	}

	err := cnf.validateAndAddDefaults()
	if err == nil || err.Error() != "source base URL is required" {
		t.Errorf("Expected source base URL required error, got %v", err)
	}

	cnf = Configuration{
		ProjectName: "Test Project",
		Source:      SourceConfig{BaseUrl: "http://records.local/api"},
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Test default port setting
	if cnf.Server.Port != DEFAULT_PORT {
		t.Errorf("Expected default port %s, got %s", DEFAULT_PORT, cnf.Server.Port)
	}

	if cnf.Display.UpcomingLimit != DEFAULT_ROW_LIMIT {
		t.Errorf("Expected default row limit %d, got %d", DEFAULT_ROW_LIMIT, cnf.Display.UpcomingLimit)
	}

	if cnf.Source.TimeoutSec != 15 {
		t.Errorf("Expected default source timeout, got %d", cnf.Source.TimeoutSec)
	}
}

func TestRateLimitDefaults(t *testing.T) {
	rps := 10.0
	cnf := Configuration{
		Source:    SourceConfig{BaseUrl: "http://records.local/api"},
		RateLimit: RateLimitConfig{RequestsPerSecond: &rps},
	}

	if err := cnf.validateAndAddDefaults(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cnf.RateLimit.Burst == nil || *cnf.RateLimit.Burst != 20 {
		t.Errorf("Expected default burst of 20, got %v", cnf.RateLimit.Burst)
	}
	if cnf.RateLimit.CleanupIntervalSec == nil {
		t.Error("Expected default cleanup interval to be set")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "careview.json")
	if err != nil {
		t.Fatalf("Unable to create temporary file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	sampleConfig := Configuration{
		ProjectName: "Temp Project",
		Source:      SourceConfig{BaseUrl: "http://records.local/api"},
	}
	if err := json.NewEncoder(tmpFile).Encode(&sampleConfig); err != nil {
		t.Fatalf("Unable to write sample config: %v", err)
	}
	tmpFile.Close()

	if err := loadConfigFromFile(tmpFile.Name()); err != nil {
		t.Fatalf("loadConfigFromFile returned error: %v", err)
	}

	loaded, err := Fetch()
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if loaded.ProjectName != "Temp Project" {
		t.Errorf("Expected project name to round-trip, got %s", loaded.ProjectName)
	}
	if loaded.Server.Port != DEFAULT_PORT {
		t.Errorf("Expected default port after load, got %s", loaded.Server.Port)
	}
}
