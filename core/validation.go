// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"strings"
	"time"
)

// ValidateRecord validates a burial Record according to domain rules.
//
// Validation rules:
//   - FirstName or LastName must not be empty
//   - DateOfBirth and DateOfDeath must not be in the future
//   - DateOfDeath must not precede DateOfBirth when both are known
//   - PlotType, when set, must be one of the known plot types
//
// NOT validated (populated by processors):
//   - Vector (can be empty until embedding processor runs)
//   - ID (0 is valid from database sequences)
func ValidateRecord(record *Record) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if strings.TrimSpace(record.FirstName) == "" && strings.TrimSpace(record.LastName) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrMissingName)
	}

	if !IsValidTimestamp(record.DateOfBirth) || !IsValidTimestamp(record.DateOfDeath) {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrInvalidTimestamp)
	}

	if !record.DateOfBirth.IsZero() && !record.DateOfDeath.IsZero() &&
		record.DateOfDeath.Before(record.DateOfBirth) {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrDeathBeforeBirth)
	}

	if err := ValidatePlotType(record.PlotType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	return nil
}

// ValidatePlotType accepts the empty string and the known plot types.
func ValidatePlotType(plotType string) error {
	switch plotType {
	case "", PlotTypeFamily, PlotTypeSingle, PlotTypeLawn, PlotTypeMausoleum:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidPlotType, plotType)
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
