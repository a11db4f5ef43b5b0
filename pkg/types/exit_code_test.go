// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestExitCodeValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     ExitCode
		wantValid bool
	}{
		{name: "success is valid", value: ExitSuccess, wantValid: true},
		{name: "version not found is valid", value: ExitVersionNotFound, wantValid: true},
		{name: "255 is valid", value: 255, wantValid: true},
		{name: "negative is invalid", value: -1, wantValid: false},
		{name: "256 is invalid", value: 256, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if tt.wantValid {
				if err != nil {
					t.Errorf("ExitCode(%d).Validate() returned error for valid value: %v", tt.value, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ExitCode(%d).Validate() returned nil for invalid value", tt.value)
			}
			if !errors.Is(err, ErrInvalidExitCode) {
				t.Errorf("error does not wrap ErrInvalidExitCode: %v", err)
			}
		})
	}
}

func TestExitCodesAreDistinct(t *testing.T) {
	t.Parallel()

	codes := []ExitCode{ExitSuccess, ExitFailure, ExitVersionNotFound, ExitPackagingFailed, ExitInvalidConfig}
	seen := make(map[ExitCode]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("exit code %s declared twice", c)
		}
		seen[c] = true
	}
	if !ExitSuccess.IsSuccess() {
		t.Error("ExitSuccess.IsSuccess() = false")
	}
	if ExitVersionNotFound.IsSuccess() {
		t.Error("ExitVersionNotFound.IsSuccess() = true")
	}
}

func TestExitCodeString(t *testing.T) {
	t.Parallel()

	if got := ExitPackagingFailed.String(); got != "3" {
		t.Errorf("String() = %q, want %q", got, "3")
	}
}
