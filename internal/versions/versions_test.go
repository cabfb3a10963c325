package versions

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionInfo(t *testing.T) {
	t.Parallel()

	info := GetVersionInfo()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.NotEmpty(t, info.Commit)
	assert.NotEmpty(t, info.BuildDate)
}

func TestFillFromBuildSettings(t *testing.T) {
	t.Parallel()

	settings := []debug.BuildSetting{
		{Key: "vcs", Value: "git"},
		{Key: "vcs.revision", Value: "4f2a9c1"},
		{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
	}

	tests := []struct {
		name string
		info VersionInfo
		want VersionInfo
	}{
		{
			name: "fills missing values",
			info: VersionInfo{},
			want: VersionInfo{Commit: "4f2a9c1", BuildDate: "2026-10-01T12:00:00Z"},
		},
		{
			name: "link time values win",
			info: VersionInfo{Commit: "abc", BuildDate: "yesterday"},
			want: VersionInfo{Commit: "abc", BuildDate: "yesterday"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			info := tt.info
			fillFromBuildSettings(&info, settings)
			assert.Equal(t, tt.want, info)
		})
	}
}
