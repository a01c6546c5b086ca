// Copyright 2026 The Helix Authors
// SPDX-License-Identifier: Apache-2.0

package durable

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.hlx")
	data := []byte("first snapshot contents")

	if err := WriteFile(path, data, false); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("contents = %q, want %q", got, data)
	}
}

func TestWriteFileOverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.hlx")

	if err := WriteFile(path, []byte("version one"), false); err != nil {
		t.Fatalf("WriteFile first: %v", err)
	}
	if err := WriteFile(path, []byte("version two"), false); err != nil {
		t.Fatalf("WriteFile second: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "version two" {
		t.Errorf("contents = %q, want %q (second write should win)", got, "version two")
	}
}

func TestWriteFileNoTemporaryFileLeftBehind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.hlx")

	if err := WriteFile(path, []byte("data"), false); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file still exists after successful WriteFile")
	}
}

func TestWriteFileCreatesMissingParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "subdir", "snapshot.hlx")

	if err := WriteFile(path, []byte("data"), false); err != nil {
		t.Fatalf("WriteFile to nonexistent parent directory: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "data" {
		t.Errorf("contents = %q, want %q", got, "data")
	}
}

func TestWriteFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.hlx")

	if err := WriteFile(path, []byte("data"), false); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions = %04o, want 0600", perm)
	}
}

func TestWriteFileKeepsBackupOfPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.hlx")
	backupPath := path + ".bak"

	if err := WriteFile(path, []byte("original"), true); err != nil {
		t.Fatalf("WriteFile first: %v", err)
	}
	if err := WriteFile(path, []byte("updated"), true); err != nil {
		t.Fatalf("WriteFile second: %v", err)
	}

	current, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile current: %v", err)
	}
	if string(current) != "updated" {
		t.Errorf("current contents = %q, want %q", current, "updated")
	}

	backup, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("ReadFile backup: %v", err)
	}
	if string(backup) != "original" {
		t.Errorf("backup contents = %q, want %q", backup, "original")
	}
}

func TestWriteFileNoBackupWhenDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.hlx")

	if err := WriteFile(path, []byte("original"), false); err != nil {
		t.Fatalf("WriteFile first: %v", err)
	}
	if err := WriteFile(path, []byte("updated"), false); err != nil {
		t.Fatalf("WriteFile second: %v", err)
	}

	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Error("backup file should not exist when keepBackup is false")
	}
}

func TestWriteFileNoBackupOnFirstWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.hlx")

	if err := WriteFile(path, []byte("first"), true); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Error("backup file should not exist when there was no previous file to preserve")
	}
}
