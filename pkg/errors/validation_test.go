package errors

import (
	"reflect"
	"strings"
	"testing"
)

func TestValidateHadithID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "bukhari-1", false},
		{"with colon", "muslim:8a", false},
		{"numeric", "42", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"space", "bukhari 1", true},
		{"slash", "bukhari/1", true},
		{"backslash", "bukhari\\1", true},
		{"traversal", "..", true},
		{"null byte", "a\x00b", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHadithID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHadithID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidHadithID) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidHadithID)
			}
		})
	}
}

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"latin", "abu hurayra", false},
		{"arabic", "أبو هريرة", false},
		{"single char", "a", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("x", 201), true},
		{"control", "abu\x01", true},
		{"invalid utf8", "\xff\xfe", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuery(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateQuery(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestParseIndexList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{"single", "20", []int{20}, false},
		{"several", "20, 11013,30418", []int{20, 11013, 30418}, false},
		{"duplicates kept", "1,2,1", []int{1, 2, 1}, false},
		{"trailing comma", "1,2,", []int{1, 2}, false},
		{"empty", "", nil, false},
		{"blank", " , ", nil, false},

		{"word", "1,abc", nil, true},
		{"negative", "1,-2", nil, true},
		{"float", "1.5", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIndexList(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseIndexList(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !Is(err, ErrCodeInvalidIndex) {
					t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidIndex)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseIndexList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidatePage(t *testing.T) {
	tests := []struct {
		name    string
		page    int
		size    int
		wantErr bool
	}{
		{"first page", 1, 20, false},
		{"default size", 3, 0, false},
		{"max size", 1, MaxPageSize, false},

		{"zero page", 0, 20, true},
		{"negative page", -1, 20, true},
		{"negative size", 1, -5, true},
		{"size too large", 1, MaxPageSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePage(tt.page, tt.size)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePage(%d, %d) error = %v, wantErr %v", tt.page, tt.size, err, tt.wantErr)
			}
		})
	}
}
