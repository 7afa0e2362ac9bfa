package errors

import (
	"strings"
	"testing"
)

func TestValidateDatasetName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Valid", "rna_seq", false},
		{"ValidWithSpaces", "proteomics run 3", false},
		{"Empty", "", true},
		{"WhitespaceOnly", "   ", true},
		{"ControlCharacter", "rna\x01seq", true},
		{"TooLong", strings.Repeat("a", 257), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatasetName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDatasetName(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDataset) {
				t.Errorf("error code = %v, want INVALID_DATASET", GetCode(err))
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	if err := ValidateOutputPath("out/alignment.json"); err != nil {
		t.Errorf("valid path rejected: %v", err)
	}
	if err := ValidateOutputPath(""); !Is(err, ErrCodeInvalidPath) {
		t.Errorf("empty path: err = %v, want INVALID_PATH", err)
	}
	if err := ValidateOutputPath("bad\x00path"); !Is(err, ErrCodeInvalidPath) {
		t.Errorf("null byte path: err = %v, want INVALID_PATH", err)
	}
}
