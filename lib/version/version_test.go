// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"strings"
	"testing"
)

func stamp(t *testing.T, version, commit, dirty, buildTime string) {
	t.Helper()
	prevVersion, prevCommit := Version, GitCommit
	prevDirty, prevTime := GitDirty, BuildTime
	t.Cleanup(func() {
		Version, GitCommit = prevVersion, prevCommit
		GitDirty, BuildTime = prevDirty, prevTime
	})
	Version, GitCommit = version, commit
	GitDirty, BuildTime = dirty, buildTime
}

func TestInfo(t *testing.T) {
	stamp(t, "1.2.3", "abc1234", "false", "2026-08-30T00:00:00Z")
	want := "1.2.3 (abc1234, 2026-08-30T00:00:00Z)"
	if got := Info(); got != want {
		t.Fatalf("Info() = %q, want %q", got, want)
	}
}

func TestInfoDirty(t *testing.T) {
	stamp(t, "1.2.3", "abc1234", "true", "2026-08-30T00:00:00Z")
	want := "1.2.3 (abc1234-dirty, 2026-08-30T00:00:00Z)"
	if got := Info(); got != want {
		t.Fatalf("Info() = %q, want %q", got, want)
	}
}

func TestFull(t *testing.T) {
	stamp(t, "1.2.3", "abc1234", "false", "2026-08-30T00:00:00Z")
	got := Full()
	if !strings.HasPrefix(got, Info()+"\n") {
		t.Fatalf("Full() = %q, want prefix %q", got, Info())
	}
	if !strings.Contains(got, runtime.Version()) {
		t.Fatalf("Full() = %q, missing Go version %q", got, runtime.Version())
	}
	if !strings.Contains(got, runtime.GOOS+"/"+runtime.GOARCH) {
		t.Fatalf("Full() = %q, missing platform", got)
	}
}
