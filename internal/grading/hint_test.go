package grading_test

import (
	"testing"

	"github.com/signalnine/autograde/internal/grading"
)

func TestErrorType(t *testing.T) {
	tests := []struct {
		name   string
		report string
		want   string
	}{
		{"type and message", "runtime.boundsError: index out of range [3] with length 0\ngoroutine 1", "runtime.boundsError"},
		{"message only", "something went wrong", "Error"},
		{"empty", "", "Error"},
		{"leading colon", ": nothing", "Error"},
		{"sentence before colon", "an error occurred: bad", "Error"},
		{"multi line", "submission.InputError: reading standard input is not allowed\nmore: text", "submission.InputError"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grading.ErrorType(tt.report); got != tt.want {
				t.Errorf("ErrorType(%q) = %q, want %q", tt.report, got, tt.want)
			}
		})
	}
}
