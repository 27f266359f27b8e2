// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package record

import "github.com/sirupsen/logrus"

// Quiz table layout: row 0 holds each column's difficulty tier, row 1 its
// question type, and the rows after that the question fields.
const (
	quizRowTier = iota
	quizRowType
	quizRowPrompt
	quizRowHint
	quizRowCorrect
	quizRowDistractor1
	quizRowDistractor2
	quizRowCoins
	quizRowExperience

	quizRows
)

// DecodeQuizBank parses the quiz table. Column 0 holds row labels; every
// other non-empty column is one question keyed by its question type.
// Columns whose type names no known subject are skipped.
func DecodeQuizBank(data []byte) (*QuizBank, error) {
	lines := SplitLines(data)
	if len(lines) < quizRows {
		return nil, &DecodeError{Kind: "quiz", Row: len(lines), Column: -1, Reason: ReasonMissingRow}
	}

	rows := make([][]string, quizRows)
	for i := range rows {
		rows[i] = SplitRow(lines[i])
	}

	var questions []Question
	for col := 1; col < len(rows[quizRowType]); col++ {
		key := field(rows[quizRowType], col)
		if key == "" {
			continue
		}
		subject := subjectOf(key)
		if subject == "" {
			logrus.Warnf("quiz column %d: question type %q names no subject, skipped", col, key)
			continue
		}

		coins := &rowDecoder{kind: "quiz", row: quizRowCoins, fields: rows[quizRowCoins]}
		exp := &rowDecoder{kind: "quiz", row: quizRowExperience, fields: rows[quizRowExperience]}
		q := Question{
			Key:     key,
			Subject: subject,
			Tier:    field(rows[quizRowTier], col),
			Prompt:  field(rows[quizRowPrompt], col),
			Hint:    field(rows[quizRowHint], col),
			Correct: field(rows[quizRowCorrect], col),
			Distractors: [2]string{
				field(rows[quizRowDistractor1], col),
				field(rows[quizRowDistractor2], col),
			},
			Coins:      coins.intAt(col),
			Experience: exp.intAt(col),
		}
		if coins.err != nil {
			return nil, coins.err
		}
		if exp.err != nil {
			return nil, exp.err
		}
		if q.Coins < 0 {
			return nil, &DecodeError{Kind: "quiz", Row: quizRowCoins, Column: col, Reason: ReasonOutOfRange}
		}
		if q.Experience < 0 {
			return nil, &DecodeError{Kind: "quiz", Row: quizRowExperience, Column: col, Reason: ReasonOutOfRange}
		}
		questions = append(questions, q)
	}

	return NewQuizBank(questions...), nil
}
