package gateways

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ochairo/cefrelease/internal/domain/entities"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestArtifactFinder_FindArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "cef_binary_120.1.10_linux64.tar.bz2"), "standard")
	writeFile(t, filepath.Join(dir, "nested", "cef_binary_120.1.10_linux64_minimal.tar.bz2"), "minimal")
	writeFile(t, filepath.Join(dir, "nested", "cef_binary_120.1.10_linux64.tar.bz2"), "duplicate")
	writeFile(t, filepath.Join(dir, "unrelated.txt"), "x")

	entry := &entities.VersionEntry{
		Version: "120.1.10",
		Channel: entities.ChannelStable,
		Files: []entities.ArtifactFile{
			{Kind: entities.FileKindStandard, Name: "cef_binary_120.1.10_linux64.tar.bz2", SHA1: "a"},
			{Kind: entities.FileKindMinimal, Name: "cef_binary_120.1.10_linux64_minimal.tar.bz2", SHA1: "b"},
			{Kind: entities.FileKindClient, Name: "cef_binary_120.1.10_linux64_client.tar.bz2", SHA1: "c"},
		},
	}

	artifacts, err := NewArtifactFinder().FindArtifacts(dir, "linux64", entry)
	if err != nil {
		t.Fatalf("FindArtifacts() error = %v", err)
	}

	var names []string
	for _, a := range artifacts {
		names = append(names, a.Name)
		if a.Platform != "linux64" || a.Version != "120.1.10" {
			t.Errorf("artifact %s has platform=%s version=%s", a.Name, a.Platform, a.Version)
		}
		if a.Expected.Name != a.Name {
			t.Errorf("artifact %s expected file = %s", a.Name, a.Expected.Name)
		}
	}
	sort.Strings(names)

	want := []string{"cef_binary_120.1.10_linux64.tar.bz2", "cef_binary_120.1.10_linux64_minimal.tar.bz2"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("FindArtifacts() mismatch (-want +got):\n%s", diff)
	}
}

func TestArtifactFinder_MissingDir(t *testing.T) {
	_, err := NewArtifactFinder().FindArtifacts("/nonexistent/dir", "linux64", &entities.VersionEntry{})
	if err == nil {
		t.Error("FindArtifacts() should fail for a missing directory")
	}
}

func TestArtifactFinder_FindSignature(t *testing.T) {
	dir := t.TempDir()
	withAsc := filepath.Join(dir, "a.tar.bz2")
	withSig := filepath.Join(dir, "b.tar.bz2")
	writeFile(t, withAsc+".asc", "sig")
	writeFile(t, withAsc+".sig", "sig")
	writeFile(t, withSig+".sig", "sig")

	finder := NewArtifactFinder()

	if got, ok := finder.FindSignature(withAsc); !ok || got != withAsc+".asc" {
		t.Errorf("FindSignature() = %q, %v, want .asc", got, ok)
	}
	if got, ok := finder.FindSignature(withSig); !ok || got != withSig+".sig" {
		t.Errorf("FindSignature() = %q, %v, want .sig", got, ok)
	}
	if _, ok := finder.FindSignature(filepath.Join(dir, "c.tar.bz2")); ok {
		t.Error("FindSignature() should report no signature")
	}
}
