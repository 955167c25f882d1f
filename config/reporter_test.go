package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReport_Archive(t *testing.T) {
	tmpDir := t.TempDir()

	stored := filepath.Join(tmpDir, "checked.txt")
	if err := os.WriteFile(stored, []byte("div > p\n"), 0644); err != nil {
		t.Fatalf("failed to write stored file: %v", err)
	}

	conf := ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	r.Store("inputs/checked.txt", stored)
	r.StoreData("config/config.yaml", []byte("version: 1\n"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	zr, err := zip.OpenReader(conf.Destination)
	if err != nil {
		t.Fatalf("unable to open report archive: %v", err)
	}
	defer zr.Close()

	got := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open archive entry %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("unable to read archive entry %s: %v", f.Name, err)
		}
		got[f.Name] = string(data)
	}

	if _, ok := got["MANIFEST"]; !ok {
		t.Error("archive missing MANIFEST")
	}
	if got["inputs/checked.txt"] != "div > p\n" {
		t.Errorf("stored file content = %q", got["inputs/checked.txt"])
	}
	if got["config/config.yaml"] != "version: 1\n" {
		t.Errorf("stored data content = %q", got["config/config.yaml"])
	}
	if !strings.Contains(got["MANIFEST"], "inputs/checked.txt") {
		t.Error("MANIFEST missing stored file entry")
	}
}

func TestReport_AbsentFileIgnored(t *testing.T) {
	tmpDir := t.TempDir()

	conf := ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	r.Store("gone.log", filepath.Join(tmpDir, "never-created.log"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	zr, err := zip.OpenReader(conf.Destination)
	if err != nil {
		t.Fatalf("unable to open report archive: %v", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name == "gone.log" {
			t.Error("absent file should not be archived")
		}
	}
}

func TestReport_NilSafe(t *testing.T) {
	var r *Report

	// all operations are no-ops on a nil report
	r.Store("a", "b")
	r.StoreData("c", []byte("d"))
	if r.Name() != "" {
		t.Error("Name() on nil report should be empty")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() on nil report error = %v", err)
	}
}

func TestReport_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close() with nil file error = %v", err)
	}
}

func TestReport_DuplicateDataPanics(t *testing.T) {
	tmpDir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	defer r.Close()

	r.StoreData("dup", []byte("one"))
	defer func() {
		if recover() == nil {
			t.Error("StoreData() with duplicate name expected to panic")
		}
	}()
	r.StoreData("dup", []byte("two"))
}
