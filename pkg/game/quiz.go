// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package game

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-virtual-pet/pkg/record"
)

// NextQuestion picks a random question of subject that the parental
// controls allow. It returns ErrNoQuestionAvailable when the subject is
// disabled or every tier with questions is turned off.
func (s *Service) NextQuestion(ctx context.Context, subject record.Subject) (record.Question, error) {
	flags := s.store.Parental()
	if !flags.SubjectEnabled(subject) {
		return record.Question{}, fmt.Errorf("%w: subject %s disabled", ErrNoQuestionAvailable, subject)
	}

	bank, err := s.gateway.ReadQuizBank(ctx)
	if err != nil {
		return record.Question{}, fmt.Errorf("load quiz bank: %w", err)
	}
	bucket := bank.Bucket(subject, flags)
	if len(bucket) == 0 {
		return record.Question{}, fmt.Errorf("%w: subject %s", ErrNoQuestionAvailable, subject)
	}

	s.randMu.Lock()
	i := s.rand.Intn(len(bucket))
	s.randMu.Unlock()
	return bucket[i], nil
}

// CheckAnswer reports whether answer is correct for the question under key.
func (s *Service) CheckAnswer(ctx context.Context, key, answer string) (bool, record.Question, error) {
	bank, err := s.gateway.ReadQuizBank(ctx)
	if err != nil {
		return false, record.Question{}, fmt.Errorf("load quiz bank: %w", err)
	}
	q, ok := bank.Get(key)
	if !ok {
		return false, record.Question{}, fmt.Errorf("%w: %s", ErrUnknownQuestion, key)
	}
	return q.Correct == answer, q, nil
}

// AnswerQuestion checks answer and, when correct, awards the question's
// reward to pet id.
func (s *Service) AnswerQuestion(ctx context.Context, id record.PetID, key, answer string) (bool, error) {
	correct, q, err := s.CheckAnswer(ctx, key, answer)
	if err != nil || !correct {
		return false, err
	}
	_, err = s.AwardQuizReward(ctx, id, q.Experience, q.Coins)
	return true, err
}
