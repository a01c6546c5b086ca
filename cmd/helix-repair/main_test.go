// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/helixdb/helix/lib/clock"
	"github.com/helixdb/helix/lib/fingerprint"
	"github.com/helixdb/helix/lib/keystore"
	"github.com/helixdb/helix/lib/snapshot"
)

type repairGameState struct {
	Level int    `cbor:"level"`
	Name  string `cbor:"name"`
}

func TestExportProducesReadableJSON(t *testing.T) {
	dir := t.TempDir()
	keyDir := filepath.Join(dir, "keys")
	store := keystore.New(keyDir)
	defer store.Close()
	clk := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	snapPath := filepath.Join(dir, "state.hlx")
	if err := snapshot.Save(snapPath, repairGameState{Level: 3, Name: "Grace"}, store, clk, snapshot.DefaultOptions()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	jsonPath := filepath.Join(dir, "state.json")
	if err := runExport([]string{"--file", snapPath, "--out", jsonPath, "--key-dir", keyDir}); err != nil {
		t.Fatalf("runExport: %v", err)
	}

	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}

	var document exportDocument
	if err := json.Unmarshal(raw, &document); err != nil {
		t.Fatalf("parsing export: %v", err)
	}

	wantDigest := fingerprint.Of[repairGameState]().Format()
	if document.TypeDigest != wantDigest {
		t.Errorf("TypeDigest = %s, want %s", document.TypeDigest, wantDigest)
	}

	value, ok := document.Value.(map[string]any)
	if !ok {
		t.Fatalf("Value is %T, want map[string]any", document.Value)
	}
	if name, _ := value["name"].(string); name != "Grace" {
		t.Errorf("value[name] = %v, want Grace", value["name"])
	}
}

func TestExportDefaultOutPathSwapsExtension(t *testing.T) {
	if got, want := defaultExportPath("state.hlx"), "state.json"; got != want {
		t.Errorf("defaultExportPath(state.hlx) = %s, want %s", got, want)
	}
	if got, want := defaultExportPath("state.bin"), "state.bin.json"; got != want {
		t.Errorf("defaultExportPath(state.bin) = %s, want %s", got, want)
	}
}

func TestImportRecoversSnapshot(t *testing.T) {
	dir := t.TempDir()
	keyDir := filepath.Join(dir, "keys")

	document := exportDocument{
		TypeDigest: fingerprint.Of[repairGameState]().Format(),
		Value:      map[string]any{"level": 7, "name": "Ada"},
	}
	raw, err := json.Marshal(document)
	if err != nil {
		t.Fatal(err)
	}
	jsonPath := filepath.Join(dir, "recovered.json")
	if err := os.WriteFile(jsonPath, raw, 0600); err != nil {
		t.Fatal(err)
	}

	snapPath := filepath.Join(dir, "recovered.hlx")
	if err := runImport([]string{"--file", jsonPath, "--out", snapPath, "--key-dir", keyDir}); err != nil {
		t.Fatalf("runImport: %v", err)
	}

	store := keystore.New(keyDir)
	defer store.Close()

	loaded, err := snapshot.LoadOrFail[repairGameState](snapPath, store)
	if err != nil {
		t.Fatalf("LoadOrFail: %v", err)
	}
	if loaded.Level != 7 || loaded.Name != "Ada" {
		t.Errorf("loaded = %+v, want {Level:7 Name:Ada}", loaded)
	}
}

func TestImportToleratesCommentedJSON(t *testing.T) {
	dir := t.TempDir()
	keyDir := filepath.Join(dir, "keys")

	digest := fingerprint.Of[repairGameState]().Format()
	commented := `{
  // recovered by hand after a disk failure
  "type_digest": "` + digest + `",
  "value": {
    "level": 1,
    "name": "commented" /* trailing note */
  }
}`
	jsonPath := filepath.Join(dir, "recovered.jsonc")
	if err := os.WriteFile(jsonPath, []byte(commented), 0600); err != nil {
		t.Fatal(err)
	}

	snapPath := filepath.Join(dir, "recovered.hlx")
	if err := runImport([]string{"--file", jsonPath, "--out", snapPath, "--key-dir", keyDir}); err != nil {
		t.Fatalf("runImport: %v", err)
	}

	store := keystore.New(keyDir)
	defer store.Close()

	loaded, err := snapshot.LoadOrFail[repairGameState](snapPath, store)
	if err != nil {
		t.Fatalf("LoadOrFail: %v", err)
	}
	if loaded.Name != "commented" {
		t.Errorf("Name = %s, want commented", loaded.Name)
	}
}

func TestImportRejectsMissingTypeDigest(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(jsonPath, []byte(`{"value": {"level": 1}}`), 0600); err != nil {
		t.Fatal(err)
	}

	err := runImport([]string{"--file", jsonPath, "--out", filepath.Join(dir, "out.hlx"), "--key-dir", filepath.Join(dir, "keys")})
	if err == nil {
		t.Fatal("expected an error for a missing type_digest")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	keyDir := filepath.Join(dir, "keys")
	store := keystore.New(keyDir)
	clk := clock.Fake(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	original := filepath.Join(dir, "original.hlx")
	if err := snapshot.Save(original, repairGameState{Level: 42, Name: "Turing"}, store, clk, snapshot.DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	store.Close()

	jsonPath := filepath.Join(dir, "original.json")
	if err := runExport([]string{"--file", original, "--out", jsonPath, "--key-dir", keyDir}); err != nil {
		t.Fatalf("runExport: %v", err)
	}

	recovered := filepath.Join(dir, "recovered.hlx")
	if err := runImport([]string{"--file", jsonPath, "--out", recovered, "--key-dir", keyDir}); err != nil {
		t.Fatalf("runImport: %v", err)
	}

	readBackStore := keystore.New(keyDir)
	defer readBackStore.Close()
	loaded, err := snapshot.LoadOrFail[repairGameState](recovered, readBackStore)
	if err != nil {
		t.Fatalf("LoadOrFail: %v", err)
	}
	if loaded.Level != 42 || loaded.Name != "Turing" {
		t.Errorf("loaded = %+v, want {Level:42 Name:Turing}", loaded)
	}
}
