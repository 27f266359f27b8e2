// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package persist

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-virtual-pet/pkg/record"
)

// PartialError reports pet rows that failed to decode. The rows that did
// decode are still returned alongside it.
type PartialError struct {
	Rows map[record.PetID]error
}

func (e *PartialError) Error() string {
	ids := make([]int, 0, len(e.Rows))
	for id := range e.Rows {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("pet %s: %v", record.PetID(id), e.Rows[record.PetID(id)]))
	}
	return "partial pet read: " + strings.Join(parts, "; ")
}

func (e *PartialError) Unwrap() []error {
	errs := make([]error, 0, len(e.Rows))
	for _, err := range e.Rows {
		errs = append(errs, err)
	}
	return errs
}

// Failed reports whether the row of id failed to decode.
func (e *PartialError) Failed(id record.PetID) bool {
	_, ok := e.Rows[id]
	return ok
}

// ReadPets reads the three pet rows that follow the header line.
func (g *Gateway) ReadPets(ctx context.Context) ([record.PetCount]record.PetRecord, error) {
	var pets [record.PetCount]record.PetRecord

	data, err := g.read(ctx, KindPet)
	if err != nil {
		return pets, err
	}

	lines := record.SplitLines(data)
	failed := make(map[record.PetID]error)
	for i, id := range record.PetIDs {
		line := ""
		if i+1 < len(lines) {
			line = lines[i+1]
		}
		pet, err := record.DecodePet(line)
		if err != nil {
			var de *record.DecodeError
			if errors.As(err, &de) {
				de.Row = i + 1
			}
			logrus.Warnf("pet %s: %v", id, err)
			failed[id] = err
			continue
		}
		pets[i] = pet
	}

	if len(failed) > 0 {
		return pets, &PartialError{Rows: failed}
	}
	return pets, nil
}

// WritePet replaces the row of one pet, keeping every other line of the file.
func (g *Gateway) WritePet(ctx context.Context, id record.PetID, pet record.PetRecord) error {
	if !id.Valid() {
		return fmt.Errorf("write pet: invalid pet %s", id)
	}
	return g.replaceLines(ctx, KindPet, record.PetHeader, record.EncodePet(record.NewPetRecord()),
		map[int]string{int(id) + 1: record.EncodePet(pet)})
}

// WritePets replaces all three pet rows in one write.
func (g *Gateway) WritePets(ctx context.Context, pets [record.PetCount]record.PetRecord) error {
	rows := make(map[int]string, record.PetCount)
	for i, pet := range pets {
		rows[i+1] = record.EncodePet(pet)
	}
	return g.replaceLines(ctx, KindPet, record.PetHeader, "", rows)
}

// ReadParental reads the parental-control flags.
func (g *Gateway) ReadParental(ctx context.Context) (record.ParentalFlags, error) {
	data, err := g.read(ctx, KindParental)
	if err != nil {
		return record.ParentalFlags{}, err
	}
	return record.DecodeParental(data)
}

// WriteParental replaces the flag row, keeping the header.
func (g *Gateway) WriteParental(ctx context.Context, flags record.ParentalFlags) error {
	return g.replaceLines(ctx, KindParental, record.ParentalHeader, "",
		map[int]string{1: record.EncodeParentalRow(flags)})
}

// ReadTimeWindow reads the allowed play window.
func (g *Gateway) ReadTimeWindow(ctx context.Context) (record.TimeWindow, error) {
	data, err := g.read(ctx, KindTimeWindow)
	if err != nil {
		return record.TimeWindow{}, err
	}
	return record.DecodeTimeWindow(data)
}

// WriteTimeWindow rewrites the time-window file.
func (g *Gateway) WriteTimeWindow(ctx context.Context, w record.TimeWindow) error {
	return g.writeWhole(ctx, KindTimeWindow, record.EncodeTimeWindow(w))
}

// ReadPlayStats reads the play-time counters.
func (g *Gateway) ReadPlayStats(ctx context.Context) (record.PlayStats, error) {
	data, err := g.read(ctx, KindPlayStats)
	if err != nil {
		return record.PlayStats{}, err
	}
	return record.DecodePlayStats(data)
}

// WritePlayStats rewrites the play-statistics file.
func (g *Gateway) WritePlayStats(ctx context.Context, s record.PlayStats) error {
	return g.writeWhole(ctx, KindPlayStats, record.EncodePlayStats(s))
}

// ReadQuizBank loads the quiz table on first use and returns the cached bank
// afterwards. A failed first load is not retried.
func (g *Gateway) ReadQuizBank(ctx context.Context) (*record.QuizBank, error) {
	g.quizOnce.Do(func() {
		data, err := g.read(ctx, KindQuizBank)
		if err != nil {
			g.quizErr = err
			return
		}
		g.quiz, g.quizErr = record.DecodeQuizBank(data)
		if g.quizErr == nil {
			logrus.Infof("quiz bank loaded: %d questions", g.quiz.Len())
		}
	})
	return g.quiz, g.quizErr
}
