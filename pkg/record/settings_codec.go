// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package record

import "strconv"

// Headers of the settings files.
const (
	ParentalHeader   = "Math,English,Geography,Tier2,Tier4,Tier6"
	TimeWindowHeader = "StartTime,EndTime"
	PlayStatsHeader  = "TotalPlayTime,SessionCount"
)

// DecodeParental reads the flags from the second line of a parental file.
// Missing trailing flags read as false.
func DecodeParental(data []byte) (ParentalFlags, error) {
	var flags ParentalFlags

	lines := SplitLines(data)
	if len(lines) < 2 {
		return flags, &DecodeError{Kind: "parental", Row: 1, Column: -1, Reason: ReasonMissingRow}
	}

	fields := SplitRow(lines[1])
	for i := range flags {
		flags[i] = parseBool(field(fields, i))
	}
	return flags, nil
}

// EncodeParentalRow renders the flag row of a parental file.
func EncodeParentalRow(flags ParentalFlags) string {
	fields := make([]string, len(flags))
	for i, f := range flags {
		fields[i] = formatBool(f)
	}
	return JoinRow(fields)
}

// DecodeTimeWindow reads a time-window file. Anything other than the exact
// header and a two-column row of hours in [0,24] is rejected.
func DecodeTimeWindow(data []byte) (TimeWindow, error) {
	lines := SplitLines(data)
	if len(lines) < 1 || !headerMatches(SplitRow(lines[0]), "StartTime", "EndTime") {
		return TimeWindow{}, &DecodeError{Kind: "time-window", Row: 0, Column: -1, Reason: ReasonHeaderMismatch}
	}
	if len(lines) < 2 {
		return TimeWindow{}, &DecodeError{Kind: "time-window", Row: 1, Column: -1, Reason: ReasonMissingRow}
	}

	fields := SplitRow(lines[1])
	if len(fields) != 2 {
		return TimeWindow{}, &DecodeError{Kind: "time-window", Row: 1, Column: -1, Reason: ReasonColumnCount}
	}

	d := &rowDecoder{kind: "time-window", row: 1, fields: fields}
	w := TimeWindow{Start: d.intAt(0), End: d.intAt(1)}
	if w.Start < 0 || w.Start > 24 {
		d.fail(0, ReasonOutOfRange)
	}
	if w.End < 0 || w.End > 24 {
		d.fail(1, ReasonOutOfRange)
	}
	if d.err != nil {
		return TimeWindow{}, d.err
	}
	return w, nil
}

// EncodeTimeWindow renders a complete time-window file.
func EncodeTimeWindow(w TimeWindow) []byte {
	return JoinLines([]string{
		TimeWindowHeader,
		JoinRow([]string{strconv.Itoa(w.Start), strconv.Itoa(w.End)}),
	})
}

// DecodePlayStats reads a play-statistics file.
func DecodePlayStats(data []byte) (PlayStats, error) {
	lines := SplitLines(data)
	if len(lines) < 1 || !headerMatches(SplitRow(lines[0]), "TotalPlayTime", "SessionCount") {
		return PlayStats{}, &DecodeError{Kind: "play-stats", Row: 0, Column: -1, Reason: ReasonHeaderMismatch}
	}
	if len(lines) < 2 {
		return PlayStats{}, &DecodeError{Kind: "play-stats", Row: 1, Column: -1, Reason: ReasonMissingRow}
	}

	d := &rowDecoder{kind: "play-stats", row: 1, fields: SplitRow(lines[1])}
	s := PlayStats{TotalPlaySeconds: d.int64At(0), SessionCount: d.intAt(1)}
	if s.TotalPlaySeconds < 0 {
		d.fail(0, ReasonOutOfRange)
	}
	if s.SessionCount < 0 {
		d.fail(1, ReasonOutOfRange)
	}
	if d.err != nil {
		return PlayStats{}, d.err
	}
	return s, nil
}

// EncodePlayStats renders a complete play-statistics file.
func EncodePlayStats(s PlayStats) []byte {
	return JoinLines([]string{
		PlayStatsHeader,
		JoinRow([]string{strconv.FormatInt(s.TotalPlaySeconds, 10), strconv.Itoa(s.SessionCount)}),
	})
}
