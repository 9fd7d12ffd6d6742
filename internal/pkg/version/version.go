// Package version 빌드 시 -ldflags로 주입된 버전 정보와 실행 환경 정보를 제공합니다.
//
//	go build -ldflags "-X github.com/darkkaiser/price-scraper/internal/pkg/version.appVersion=v1.4.0 \
//	  -X github.com/darkkaiser/price-scraper/internal/pkg/version.buildNumber=57"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

const unknown = "unknown"

// -ldflags -X로 주입됩니다. 직접 읽지 말고 Get()을 사용합니다.
var (
	appVersion    = ""
	gitCommitHash = ""
	gitTreeState  = "" // clean 또는 dirty
	buildDate     = ""
	buildNumber   = ""
)

// readBuildInfo 테스트에서 교체할 수 있도록 변수로 둡니다.
var readBuildInfo = debug.ReadBuildInfo

// Info 애플리케이션 빌드 정보입니다. /version 응답과 시작 로그에 사용됩니다.
type Info struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	BuildDate   string `json:"build_date"`
	BuildNumber string `json:"build_number"`
	GoVersion   string `json:"go_version"`
	OS          string `json:"os"`
	Arch        string `json:"arch"`

	// DirtyBuild 커밋되지 않은 변경이 있는 소스로 빌드했으면 true
	DirtyBuild bool `json:"dirty_build"`
}

var current = sync.OnceValue(func() Info {
	return enrich(Info{
		Version:     strings.TrimSpace(appVersion),
		Commit:      strings.TrimSpace(gitCommitHash),
		BuildDate:   strings.TrimSpace(buildDate),
		BuildNumber: strings.TrimSpace(buildNumber),
		DirtyBuild:  strings.EqualFold(strings.TrimSpace(gitTreeState), "dirty"),
	})
})

// Get 현재 실행 파일의 빌드 정보를 반환합니다.
func Get() Info {
	return current()
}

// enrich 비어 있는 필드를 런타임 값과 debug.BuildInfo의 VCS 정보로 채웁니다.
// -ldflags 없이 go run으로 실행해도 커밋과 빌드 시각이 남습니다.
func enrich(bi Info) Info {
	if bi.GoVersion == "" {
		bi.GoVersion = runtime.Version()
	}
	if bi.OS == "" {
		bi.OS = runtime.GOOS
	}
	if bi.Arch == "" {
		bi.Arch = runtime.GOARCH
	}

	if b, ok := readBuildInfo(); ok && b != nil {
		for _, s := range b.Settings {
			switch s.Key {
			case "vcs.revision":
				if isUnset(bi.Commit) {
					bi.Commit = s.Value
				}
			case "vcs.time":
				if isUnset(bi.BuildDate) {
					bi.BuildDate = s.Value
				}
			case "vcs.modified":
				bi.DirtyBuild = bi.DirtyBuild || s.Value == "true"
			}
		}
		if bi.Version == "" && b.Main.Version != "" && b.Main.Version != "(devel)" {
			bi.Version = b.Main.Version
		}
	}

	if isUnset(bi.Version) {
		bi.Version = unknown
	}
	if isUnset(bi.Commit) {
		bi.Commit = unknown
	}
	if isUnset(bi.BuildDate) {
		bi.BuildDate = unknown
	}

	return bi
}

func isUnset(v string) bool {
	return v == "" || v == unknown || v == "none"
}

// ShortCommit 커밋 해시의 앞 7자리를 반환합니다.
func (i Info) ShortCommit() string {
	if len(i.Commit) > 7 && i.Commit != unknown {
		return i.Commit[:7]
	}
	return i.Commit
}

// Fields 구조적 로깅용 필드 맵을 반환합니다.
func (i Info) Fields() map[string]any {
	return map[string]any{
		"version":      i.Version,
		"commit":       i.ShortCommit(),
		"build_date":   i.BuildDate,
		"build_number": i.BuildNumber,
		"go_version":   i.GoVersion,
		"os":           i.OS,
		"arch":         i.Arch,
		"dirty_build":  i.DirtyBuild,
	}
}

// String "v1.4.0+dirty (commit: f25b8bf, build: 57, go1.24.0 linux/amd64)" 형식으로 요약합니다.
func (i Info) String() string {
	v := i.Version
	if v == "" {
		v = unknown
	}
	if i.DirtyBuild {
		v += "+dirty"
	}

	var details []string
	if !isUnset(i.Commit) {
		details = append(details, "commit: "+i.ShortCommit())
	}
	if i.BuildNumber != "" {
		details = append(details, "build: "+i.BuildNumber)
	}
	if i.GoVersion != "" {
		details = append(details, fmt.Sprintf("%s %s/%s", i.GoVersion, i.OS, i.Arch))
	}

	if len(details) == 0 {
		return v
	}
	return fmt.Sprintf("%s (%s)", v, strings.Join(details, ", "))
}
