// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/AccelByte/extend-virtual-pet/pkg/record"
)

type fixedPets [record.PetCount]record.PetRecord

func (f fixedPets) Pets() [record.PetCount]record.PetRecord { return f }

func TestPetCollector(t *testing.T) {
	pets := fixedPets{record.NewPetRecord(), record.NewPetRecord(), record.NewPetRecord()}
	pets[1].Hunger = 42

	c := NewPetCollector(pets)
	// four needs plus level and coins, per pet
	if got := testutil.CollectAndCount(c); got != record.PetCount*6 {
		t.Errorf("collected %d metrics, want %d", got, record.PetCount*6)
	}
}

func TestResult(t *testing.T) {
	if Result(nil) != "ok" || Result(errors.New("x")) != "error" {
		t.Error("unexpected result labels")
	}
}
