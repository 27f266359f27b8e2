// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package record

import "time"

// Parental flag positions within ParentalFlags.
const (
	FlagMath = iota
	FlagEnglish
	FlagGeography
	FlagTier2
	FlagTier4
	FlagTier6

	ParentalFlagCount
)

// ParentalFlags is the parental-control vector: three subject toggles
// followed by three difficulty toggles.
type ParentalFlags [ParentalFlagCount]bool

// DefaultParentalFlags enables every subject and difficulty.
func DefaultParentalFlags() ParentalFlags {
	return ParentalFlags{true, true, true, true, true, true}
}

// SubjectEnabled reports whether questions of subject may be asked.
func (f ParentalFlags) SubjectEnabled(s Subject) bool {
	switch s {
	case SubjectMath:
		return f[FlagMath]
	case SubjectEnglish:
		return f[FlagEnglish]
	case SubjectGeography:
		return f[FlagGeography]
	}
	return false
}

// TierEnabled reports whether the difficulty tier ("2", "4" or "6") is allowed.
func (f ParentalFlags) TierEnabled(tier string) bool {
	switch tier {
	case "2":
		return f[FlagTier2]
	case "4":
		return f[FlagTier4]
	case "6":
		return f[FlagTier6]
	}
	return false
}

// TimeWindow is the allowed-play interval in whole hours. Start > End means
// the window spans midnight.
type TimeWindow struct {
	Start int
	End   int
}

// DefaultTimeWindow allows play all day.
func DefaultTimeWindow() TimeWindow {
	return TimeWindow{Start: 0, End: 24}
}

// Valid reports whether both bounds lie in [0,24].
func (w TimeWindow) Valid() bool {
	return w.Start >= 0 && w.Start <= 24 && w.End >= 0 && w.End <= 24
}

// Allows reports whether play is allowed at t's local hour.
func (w TimeWindow) Allows(t time.Time) bool {
	hour := t.Hour()
	if w.Start <= w.End {
		return hour >= w.Start && hour < w.End
	}
	return hour >= w.Start || hour < w.End
}

// PlayStats holds the cumulative play-time counters.
type PlayStats struct {
	TotalPlaySeconds int64
	SessionCount     int
}

// AveragePerSession returns the mean session length, or 0 with no sessions.
func (s PlayStats) AveragePerSession() time.Duration {
	if s.SessionCount <= 0 {
		return 0
	}
	return time.Duration(s.TotalPlaySeconds/int64(s.SessionCount)) * time.Second
}
