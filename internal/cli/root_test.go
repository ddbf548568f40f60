package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/git-pkgs/adoptium/internal/core"
	"github.com/git-pkgs/adoptium/internal/platform"
	"github.com/git-pkgs/adoptium/internal/tool"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v3/info/release_versions":
			_, _ = w.Write([]byte(`{"versions":[
				{"major":21,"minor":0,"security":5,"build":11,"semver":"21.0.5+11.0.LTS"},
				{"major":17,"minor":0,"security":13,"build":11,"semver":"17.0.13+11"}
			]}`))
		case "/v3/assets/release_name/eclipse/jdk-21.0.5+11":
			_, _ = w.Write([]byte(`{"binaries":[{"package":{
				"name":"OpenJDK21U-jdk_aarch64_mac_hotspot_21.0.5_11.tar.gz",
				"checksum":"deadbeef",
				"link":"https://example.invalid/OpenJDK21U-jdk_aarch64_mac_hotspot_21.0.5_11.tar.gz"
			}}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestReleaseNameCmd(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"17.0.2+8", "jdk-17.0.2+8"},
		{"8.0.412+8", "jdk8u412-b08"},
		{"11.0.0+28", "jdk-11+28"},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			out, err := run(t, "release-name", tt.version)
			if err != nil {
				t.Fatalf("release-name failed: %v", err)
			}
			if strings.TrimSpace(out) != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestReleaseNameCmd_InvalidVersion(t *testing.T) {
	if _, err := run(t, "release-name", "not-a-version"); err == nil {
		t.Error("expected error for invalid version")
	}
}

func TestVersionsCmd(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	out, err := run(t, "versions", "--api-url", server.URL, "--os", "linux", "--arch", "x64", "--libc", "gnu")
	if err != nil {
		t.Fatalf("versions failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if lines[0] != "21.0.5+11  (latest)" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "17.0.13+11" {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestVersionsCmd_JSON(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	out, err := run(t, "versions", "--json", "--api-url", server.URL, "--os", "linux", "--arch", "x64")
	if err != nil {
		t.Fatalf("versions failed: %v", err)
	}

	var list core.VersionList
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(list.Versions) != 2 {
		t.Errorf("expected 2 versions, got %d", len(list.Versions))
	}
	if list.Latest.Major != 21 {
		t.Errorf("Latest = %+v", list.Latest)
	}
}

func TestResolveCmd(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	out, err := run(t, "resolve", "21.0.5+11", "--json", "--api-url", server.URL, "--os", "macos", "--arch", "arm64")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	var artifact core.Artifact
	if err := json.Unmarshal([]byte(out), &artifact); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if artifact.ArchivePrefix != "jdk-21.0.5+11" {
		t.Errorf("ArchivePrefix = %q", artifact.ArchivePrefix)
	}
	if artifact.Checksum.Hash != "deadbeef" {
		t.Errorf("Checksum = %+v", artifact.Checksum)
	}
}

func TestResolveCmd_UnsupportedPlatform(t *testing.T) {
	_, err := run(t, "resolve", "21.0.5+11", "--api-url", "http://127.0.0.1:0", "--os", "freebsd", "--arch", "x64")
	if err == nil {
		t.Fatal("expected error for unsupported platform")
	}
}

func TestExecutablesCmd(t *testing.T) {
	out, err := run(t, "executables", "--os", "macos")
	if err != nil {
		t.Fatalf("executables failed: %v", err)
	}
	if !strings.Contains(out, "Contents/Home/bin/java  (primary)") {
		t.Errorf("output missing primary java entry:\n%s", out)
	}
	if strings.Count(strings.TrimSpace(out), "\n") != 4 {
		t.Errorf("expected 5 lines:\n%s", out)
	}
}

func TestInfoCmd(t *testing.T) {
	out, err := run(t, "info")
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	if !strings.Contains(out, "Eclipse Adoptium OpenJDK") {
		t.Errorf("output missing tool name:\n%s", out)
	}

	if _, err := run(t, "info", "--allow", "MIT"); err == nil {
		t.Error("expected error when license is not allowed")
	}
}

func TestPluginFlagRoutesEveryCommand(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "adoptium-plugin")

	for _, args := range [][]string{
		{"executables", "--os", "linux"},
		{"info"},
		{"versions", "--os", "linux", "--arch", "x64"},
	} {
		t.Run(args[0], func(t *testing.T) {
			if _, err := run(t, append(args, "--plugin", missing)...); err == nil {
				t.Errorf("%s ignored --plugin %s", args[0], missing)
			}
		})
	}
}

func TestOpenTool_InProcess(t *testing.T) {
	opts := &options{timeout: time.Second}
	impl, closeFn, err := openTool(opts, hclog.NewNullLogger())
	if err != nil {
		t.Fatalf("openTool failed: %v", err)
	}
	defer closeFn()

	meta, err := impl.RegisterTool(context.Background())
	if err != nil {
		t.Fatalf("RegisterTool failed: %v", err)
	}
	if meta.License != tool.License {
		t.Errorf("License = %q, want %q", meta.License, tool.License)
	}

	set, err := impl.LocateExecutables(context.Background(), platform.Triple{OS: platform.Linux})
	if err != nil {
		t.Fatalf("LocateExecutables failed: %v", err)
	}
	if set.Exes["java"].Path != "bin/java" {
		t.Errorf("java path = %q", set.Exes["java"].Path)
	}
}
