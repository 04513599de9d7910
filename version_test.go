package arazzo

import "testing"

// Test accepted and rejected specification versions
func TestCheckVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr bool
	}{
		{"current release", "1.0.1", false},
		{"line base", "1.0.0", false},
		{"future patch", "1.0.9", false},
		{"next minor", "1.1.0", true},
		{"next major", "2.0.0", true},
		{"not a version", "latest", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkVersion(tt.version)
			if tt.wantErr && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// Test the gate reports the declared and supported versions
func TestCheckVersion_ErrorDetail(t *testing.T) {
	de, ok := AsDecodeError(checkVersion("3.1.4"))
	if !ok {
		t.Fatal("Expected a DecodeError")
	}
	if de.Code != ErrorCodeUnsupportedVersion {
		t.Errorf("Expected UNSUPPORTED_VERSION, got %s", de.Code)
	}
	if de.Found != "3.1.4" {
		t.Errorf("Expected found '3.1.4', got '%s'", de.Found)
	}
	if len(de.Supported) != 1 || de.Supported[0] != "1.0" {
		t.Errorf("Expected supported line '1.0', got %v", de.Supported)
	}
}
