package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrich(t *testing.T) {
	original := readBuildInfo
	t.Cleanup(func() { readBuildInfo = original })

	vcs := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.9.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "f25b8bf3c91d44e2a3a0b5b1c0d2e4f6a7b8c9d0"},
			{Key: "vcs.time", Value: "2026-10-01T09:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	tests := []struct {
		name      string
		input     Info
		buildInfo *debug.BuildInfo
		want      Info
	}{
		{
			name:  "빌드 정보 없음",
			input: Info{},
			want:  Info{Version: unknown, Commit: unknown, BuildDate: unknown},
		},
		{
			name:      "VCS 정보로 보강",
			input:     Info{},
			buildInfo: vcs,
			want: Info{
				Version:    "v0.9.0",
				Commit:     "f25b8bf3c91d44e2a3a0b5b1c0d2e4f6a7b8c9d0",
				BuildDate:  "2026-10-01T09:00:00Z",
				DirtyBuild: true,
			},
		},
		{
			name:      "주입된 값이 우선",
			input:     Info{Version: "v1.4.0", Commit: "abc1234", BuildDate: "2026-10-14", BuildNumber: "57"},
			buildInfo: vcs,
			want: Info{
				Version:     "v1.4.0",
				Commit:      "abc1234",
				BuildDate:   "2026-10-14",
				BuildNumber: "57",
				DirtyBuild:  true,
			},
		},
		{
			name:      "none 커밋은 VCS 값으로 교체",
			input:     Info{Version: "v1.4.0", Commit: "none"},
			buildInfo: &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}, Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789"}}},
			want:      Info{Version: "v1.4.0", Commit: "0123456789", BuildDate: unknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readBuildInfo = func() (*debug.BuildInfo, bool) { return tt.buildInfo, tt.buildInfo != nil }

			got := enrich(tt.input)

			tt.want.GoVersion = runtime.Version()
			tt.want.OS = runtime.GOOS
			tt.want.Arch = runtime.GOARCH
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInfo_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info Info
		want string
	}{
		{name: "빈 정보", info: Info{}, want: "unknown"},
		{name: "버전만", info: Info{Version: "v1.4.0", Commit: unknown}, want: "v1.4.0"},
		{
			name: "전체",
			info: Info{Version: "v1.4.0", Commit: "f25b8bf3c91d", BuildNumber: "57", GoVersion: "go1.24.0", OS: "linux", Arch: "amd64", DirtyBuild: true},
			want: "v1.4.0+dirty (commit: f25b8bf, build: 57, go1.24.0 linux/amd64)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.info.String())
		})
	}
}

func TestInfo_Fields(t *testing.T) {
	t.Parallel()

	fields := Info{Version: "v1.4.0", Commit: "f25b8bf3c91d", BuildNumber: "57"}.Fields()

	assert.Equal(t, "v1.4.0", fields["version"])
	assert.Equal(t, "f25b8bf", fields["commit"])
	assert.Equal(t, "57", fields["build_number"])
	assert.Equal(t, false, fields["dirty_build"])
}

func TestGet(t *testing.T) {
	t.Parallel()

	got := Get()
	assert.NotEmpty(t, got.Version)
	assert.NotEmpty(t, got.Commit)
	assert.Equal(t, runtime.GOOS, got.OS)
	assert.Equal(t, got, Get())
}
