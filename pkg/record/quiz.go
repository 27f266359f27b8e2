// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package record

import (
	"sort"
	"strings"
)

// Subject is a quiz category.
type Subject string

const (
	SubjectMath      Subject = "Math"
	SubjectEnglish   Subject = "English"
	SubjectGeography Subject = "Geography"
)

// Subjects lists the known subjects.
var Subjects = [...]Subject{SubjectMath, SubjectEnglish, SubjectGeography}

// subjectOf derives the subject from a question-type header such as "Math3".
func subjectOf(questionType string) Subject {
	for _, s := range Subjects {
		if strings.Contains(questionType, string(s)) {
			return s
		}
	}
	return ""
}

// Question is one quiz entry.
type Question struct {
	Key         string
	Subject     Subject
	Tier        string
	Prompt      string
	Hint        string
	Correct     string
	Distractors [2]string
	Coins       int
	Experience  int
}

// Options returns the three answer choices, correct answer first.
func (q Question) Options() [3]string {
	return [3]string{q.Correct, q.Distractors[0], q.Distractors[1]}
}

// QuizBank is the read-only question table. Build one with DecodeQuizBank.
type QuizBank struct {
	questions map[string]Question
	keys      []string
}

// NewQuizBank builds a bank from questions. Later duplicates replace earlier
// ones.
func NewQuizBank(questions ...Question) *QuizBank {
	b := &QuizBank{questions: make(map[string]Question, len(questions))}
	for _, q := range questions {
		if _, exists := b.questions[q.Key]; !exists {
			b.keys = append(b.keys, q.Key)
		}
		b.questions[q.Key] = q
	}
	sort.Strings(b.keys)
	return b
}

// Len returns the number of questions.
func (b *QuizBank) Len() int {
	if b == nil {
		return 0
	}
	return len(b.keys)
}

// Get returns the question stored under key.
func (b *QuizBank) Get(key string) (Question, bool) {
	if b == nil {
		return Question{}, false
	}
	q, ok := b.questions[key]
	return q, ok
}

// Bucket returns the questions of subject whose tier is allowed by flags,
// ordered by key.
func (b *QuizBank) Bucket(subject Subject, flags ParentalFlags) []Question {
	if b == nil {
		return nil
	}
	var out []Question
	for _, k := range b.keys {
		q := b.questions[k]
		if q.Subject == subject && flags.TierEnabled(q.Tier) {
			out = append(out, q)
		}
	}
	return out
}
