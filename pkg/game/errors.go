// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package game

import (
	"errors"
	"fmt"
)

// ErrInvariantViolation is the parent of every error for a request that would
// break a data invariant. Such requests are rejected before the store changes.
var ErrInvariantViolation = errors.New("invariant violation")

var (
	ErrInvalidPet        = fmt.Errorf("%w: invalid pet", ErrInvariantViolation)
	ErrNotOwned          = fmt.Errorf("%w: accessory not owned", ErrInvariantViolation)
	ErrUnknownAccessory  = fmt.Errorf("%w: unknown accessory", ErrInvariantViolation)
	ErrInvalidAmount     = fmt.Errorf("%w: invalid amount", ErrInvariantViolation)
	ErrInvalidTimeWindow = fmt.Errorf("%w: invalid time window", ErrInvariantViolation)
	ErrInvalidSecret     = fmt.Errorf("%w: shared secret must be 4 digits", ErrInvariantViolation)
)

// ErrNoQuestionAvailable is returned when parental settings leave no question
// to ask for a subject.
var ErrNoQuestionAvailable = errors.New("no question available")

// ErrUnknownQuestion is returned when an answer names a question that is not
// in the bank.
var ErrUnknownQuestion = errors.New("unknown question")
