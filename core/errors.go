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

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecord indicates a Record failed validation.
	ErrInvalidRecord = errors.New("invalid burial record")

	// ErrMissingName indicates neither a first nor a last name was given.
	ErrMissingName = errors.New("record must have a first or last name")

	// ErrInvalidTimestamp indicates a date is in the future.
	ErrInvalidTimestamp = errors.New("date cannot be in the future")

	// ErrDeathBeforeBirth indicates the date of death precedes the date of birth.
	ErrDeathBeforeBirth = errors.New("date of death precedes date of birth")

	// ErrInvalidPlotType indicates an unknown plot type.
	ErrInvalidPlotType = errors.New("invalid plot type")
)
