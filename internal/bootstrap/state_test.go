// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cenkalti/backoff/v4"

	"github.com/AccelByte/extend-virtual-pet/pkg/persist"
	"github.com/AccelByte/extend-virtual-pet/pkg/record"
	"github.com/AccelByte/extend-virtual-pet/pkg/store"
)

func newGateway(t *testing.T) (*persist.Gateway, string) {
	t.Helper()
	dir := t.TempDir()
	return persist.NewGateway(persist.DefaultPaths(dir), persist.WithBackOff(func() backoff.BackOff {
		return &backoff.StopBackOff{}
	})), dir
}

func TestLoadInitialStateCreatesMissingFiles(t *testing.T) {
	gw, dir := newGateway(t)

	state, err := LoadInitialState(context.Background(), gw)
	if err != nil {
		t.Fatalf("LoadInitialState() error = %v", err)
	}
	def := store.DefaultState()
	if state.Parental != def.Parental || state.TimeWindow != def.TimeWindow {
		t.Errorf("state = %+v, want defaults", state)
	}

	for _, name := range []string{"petInfo.csv", "parentalInfo.csv", "timeInfo.csv", "timePlay.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not created: %v", name, err)
		}
	}
}

func TestLoadInitialStateKeepsGoodPetRows(t *testing.T) {
	gw, dir := newGateway(t)

	good := record.NewPetRecord()
	good.Coins = 64
	lines := []string{record.PetHeader, "TRUE,1234,,x,1,1,1,1,1,1", record.EncodePet(good), record.EncodePet(good)}
	if err := os.WriteFile(filepath.Join(dir, "petInfo.csv"), record.JoinLines(lines), 0o644); err != nil {
		t.Fatal(err)
	}

	state, err := LoadInitialState(context.Background(), gw)
	if err != nil {
		t.Fatalf("LoadInitialState() error = %v", err)
	}
	if !state.Pets[record.PetA].Equal(record.NewPetRecord()) {
		t.Errorf("bad row should start from defaults, got %+v", state.Pets[record.PetA])
	}
	if state.Pets[record.PetB].Coins != 64 || state.Pets[record.PetC].Coins != 64 {
		t.Errorf("good rows not kept: %+v", state.Pets)
	}

	data, _ := os.ReadFile(filepath.Join(dir, "petInfo.csv"))
	if !strings.Contains(string(data), ",x,") {
		t.Error("partially bad pet file should be left untouched")
	}
}

func TestLoadInitialStateBadSettingsKeepDefaults(t *testing.T) {
	gw, dir := newGateway(t)

	files := map[string]string{
		"timeInfo.csv": "Start,End\n8,20\n",
		"timePlay.csv": "TotalPlayTime,SessionCount\n-5,2\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	state, err := LoadInitialState(context.Background(), gw)
	if err != nil {
		t.Fatalf("LoadInitialState() error = %v", err)
	}
	if state.TimeWindow != record.DefaultTimeWindow() {
		t.Errorf("time window = %+v, want default", state.TimeWindow)
	}
	if state.PlayStats != (record.PlayStats{}) {
		t.Errorf("play stats = %+v, want zero", state.PlayStats)
	}
}
