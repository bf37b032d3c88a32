package test_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildCLI builds the cefrelease CLI binary for testing
func buildCLI(t *testing.T) string {
	t.Helper()

	// Use a shared build directory
	buildDir := filepath.Join("..", "test-dist", "cli-bin")
	if err := os.MkdirAll(buildDir, 0750); err != nil {
		t.Fatalf("Failed to create build dir: %v", err)
	}

	cliPath, err := filepath.Abs(filepath.Join(buildDir, "cefrelease"))
	if err != nil {
		t.Fatalf("Failed to get CLI path: %v", err)
	}

	// Check if already built
	if _, err := os.Stat(cliPath); err == nil {
		return cliPath
	}

	t.Log("Building cefrelease CLI...")
	cmd := exec.Command("go", "build", "-o", cliPath, "../cmd/cefrelease") // #nosec G204 -- test code with controlled input
	cmd.Dir = filepath.Join("..", "test")

	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build CLI: %v\nOutput: %s", err, output)
	}

	t.Log("CLI built successfully")
	return cliPath
}

// runCLI runs the CLI in dir and returns stdout, stderr and the exit code
func runCLI(t *testing.T, cliPath, dir string, env []string, args ...string) (string, string, int) {
	t.Helper()

	cmd := exec.Command(cliPath, args...) // #nosec G204 -- test code with controlled input
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.String(), stderr.String(), 0
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Failed to run CLI: %v", err)
	}
	return stdout.String(), stderr.String(), exitErr.ExitCode()
}

// serveIndex starts a build index server returning body with status
func serveIndex(t *testing.T, status int, body string) string {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server.URL
}

const betaThenStableIndex = `{
  "windows64": {"versions": [
    {"cef_version": "121.0.1", "chromium_version": "121.0.6167.16", "channel": "beta", "files": []},
    {"cef_version": "120.1.10", "chromium_version": "120.0.6099.129", "channel": "stable", "files": []}
  ]},
  "linux64": {"versions": [
    {"cef_version": "121.0.1", "chromium_version": "121.0.6167.16", "channel": "beta", "files": []},
    {"cef_version": "120.1.10", "chromium_version": "120.0.6099.129", "channel": "stable", "files": []}
  ]},
  "macosx64": {"versions": [
    {"cef_version": "120.1.10", "chromium_version": "120.0.6099.129", "channel": "stable", "files": []}
  ]}
}`

// TestCLI_Help tests help output for all commands
func TestCLI_Help(t *testing.T) {
	cliPath := buildCLI(t)

	tests := []struct {
		command string
		want    string
	}{
		{command: "", want: "Commands:"},
		{command: "latest", want: "Usage: cefrelease latest"},
		{command: "notes", want: "Usage: cefrelease notes"},
		{command: "validate", want: "Usage: cefrelease validate"},
		{command: "verify", want: "Usage: cefrelease verify"},
	}

	for _, tt := range tests {
		t.Run("help_"+tt.command, func(t *testing.T) {
			args := []string{"--help"}
			if tt.command != "" {
				args = []string{tt.command, "--help"}
			}

			stdout, stderr, code := runCLI(t, cliPath, t.TempDir(), nil, args...)
			if code != 0 {
				t.Errorf("exit code = %d, want 0", code)
			}
			if !strings.Contains(stdout+stderr, tt.want) {
				t.Errorf("help output missing %q:\n%s%s", tt.want, stdout, stderr)
			}
		})
	}
}

func TestCLI_UnknownCommand(t *testing.T) {
	cliPath := buildCLI(t)

	_, stderr, code := runCLI(t, cliPath, t.TempDir(), nil, "publish")
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stderr, "Unknown command: publish") {
		t.Errorf("stderr = %q, want unknown command message", stderr)
	}
}

func TestCLI_Latest(t *testing.T) {
	cliPath := buildCLI(t)

	tests := []struct {
		name       string
		status     int
		body       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "stable version found",
			status:     http.StatusOK,
			body:       betaThenStableIndex,
			wantCode:   0,
			wantStdout: "120.1.10\n",
			wantStderr: "skipping beta version version=121.0.1",
		},
		{
			name:       "quiet prints only the version",
			status:     http.StatusOK,
			body:       betaThenStableIndex,
			args:       []string{"--quiet"},
			wantCode:   0,
			wantStdout: "120.1.10\n",
		},
		{
			name:       "required platform absent",
			status:     http.StatusOK,
			body:       betaThenStableIndex,
			args:       []string{"--required", "windows64,linux64,macosarm64"},
			wantCode:   1,
			wantStderr: "No stable version found",
		},
		{
			name:       "index unavailable",
			status:     http.StatusInternalServerError,
			body:       `{}`,
			wantCode:   2,
			wantStderr: "failed to fetch build catalog",
		},
		{
			name:       "malformed index",
			status:     http.StatusOK,
			body:       `{"windows64": {}}`,
			wantCode:   2,
			wantStderr: "malformed catalog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := serveIndex(t, tt.status, tt.body)
			args := append([]string{"latest", "--index-url", url}, tt.args...)

			stdout, stderr, code := runCLI(t, cliPath, t.TempDir(), nil, args...)
			if code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d\nstderr: %s", code, tt.wantCode, stderr)
			}
			if stdout != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr, tt.wantStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, stderr)
			}
			if tt.wantStderr == "" && stderr != "" {
				t.Errorf("stderr should be empty, got:\n%s", stderr)
			}
		})
	}
}

func TestCLI_LatestConfigFile(t *testing.T) {
	cliPath := buildCLI(t)
	url := serveIndex(t, http.StatusOK, betaThenStableIndex)

	dir := t.TempDir()
	config := "index_url: " + url + "\nrequired_platforms: [windows64, linux64]\n"
	if err := os.WriteFile(filepath.Join(dir, ".cefrelease.yml"), []byte(config), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	stdout, stderr, code := runCLI(t, cliPath, dir, nil, "latest")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr: %s", code, stderr)
	}
	if stdout != "120.1.10\n" {
		t.Errorf("stdout = %q, want 120.1.10", stdout)
	}

	// Unknown keys are rejected
	if err := os.WriteFile(filepath.Join(dir, ".cefrelease.yml"), []byte("indexurl: x\n"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, _, code := runCLI(t, cliPath, dir, nil, "latest"); code != 2 {
		t.Errorf("exit code with invalid config = %d, want 2", code)
	}
}

func TestCLI_Notes(t *testing.T) {
	cliPath := buildCLI(t)

	analysis := "plugin-win.zip=https://vt.example/a, plugin-linux.tar.gz=https://vt.example/b"

	tests := []struct {
		name     string
		env      []string
		args     []string
		wantCode int
		want     string
	}{
		{
			name:     "no tag",
			env:      []string{"GITHUB_REF=refs/heads/main"},
			args:     []string{analysis},
			wantCode: 0,
			want: "`plugin-win.zip`: [VirusTotal analysis](https://vt.example/a)\n" +
				"`plugin-linux.tar.gz`: [VirusTotal analysis](https://vt.example/b)\n",
		},
		{
			name:     "semver tag header",
			env:      []string{"GITHUB_REF=refs/tags/1.2.0"},
			args:     []string{analysis},
			wantCode: 0,
			want: "## v1.2.0\n\n" +
				"`plugin-win.zip`: [VirusTotal analysis](https://vt.example/a)\n" +
				"`plugin-linux.tar.gz`: [VirusTotal analysis](https://vt.example/b)\n",
		},
		{
			name:     "custom label and delimiter",
			env:      []string{"GITHUB_REF="},
			args:     []string{"--delimiter", ";", "--label", "Scan", "a.zip=https://x/?q=1;b.zip=https://y"},
			wantCode: 0,
			want:     "`a.zip`: [Scan](https://x/?q=1)\n`b.zip`: [Scan](https://y)\n",
		},
		{
			name:     "malformed pair",
			env:      []string{"GITHUB_REF="},
			args:     []string{"plugin.zip"},
			wantCode: 2,
		},
		{
			name:     "missing argument",
			args:     nil,
			wantCode: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"notes"}, tt.args...)
			stdout, stderr, code := runCLI(t, cliPath, t.TempDir(), tt.env, args...)
			if code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d\nstderr: %s", code, tt.wantCode, stderr)
			}
			if tt.wantCode == 0 && stdout != tt.want {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestCLI_NotesOutputFile(t *testing.T) {
	cliPath := buildCLI(t)
	dir := t.TempDir()

	_, stderr, code := runCLI(t, cliPath, dir, []string{"GITHUB_REF=refs/tags/v2.0.0-rc.1"},
		"notes", "--output", "notes.md", "a.zip=https://x")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr: %s", code, stderr)
	}

	data, err := os.ReadFile(filepath.Join(dir, "notes.md"))
	if err != nil {
		t.Fatalf("Failed to read notes: %v", err)
	}
	want := "## v2.0.0-rc.1\n\n`a.zip`: [VirusTotal analysis](https://x)\n"
	if string(data) != want {
		t.Errorf("notes.md = %q, want %q", data, want)
	}
}

func TestCLI_Validate(t *testing.T) {
	cliPath := buildCLI(t)
	url := serveIndex(t, http.StatusOK, betaThenStableIndex)

	tests := []struct {
		version  string
		wantCode int
		want     string
	}{
		{version: "120.1.10", wantCode: 0, want: "READY"},
		{version: "121.0.1", wantCode: 1, want: "not stable"},
		{version: "119.0.0", wantCode: 1, want: "not published"},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			stdout, stderr, code := runCLI(t, cliPath, t.TempDir(), nil, "validate", "--index-url", url, tt.version)
			if code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d\nstderr: %s", code, tt.wantCode, stderr)
			}
			if !strings.Contains(stdout, tt.want) {
				t.Errorf("stdout missing %q:\n%s", tt.want, stdout)
			}
		})
	}
}
