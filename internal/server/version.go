package server

import (
	"encoding/json"
	"net/http"
	"runtime"

	"github.com/fulmenhq/gofulmen/crucible"
)

// Version information is injected from main via SetVersionInfo.
var (
	appVersion   = "dev"
	appCommit    = "unknown"
	appBuildDate = "unknown"
)

// SetVersionInfo sets the version reported by /version.
func SetVersionInfo(version, commit, buildDate string) {
	appVersion = version
	appCommit = commit
	appBuildDate = buildDate
}

type versionResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Gofulmen  string `json:"gofulmen"`
	Platform  string `json:"platform"`
}

func versionHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(versionResponse{
		Name:      "mcname",
		Version:   appVersion,
		Commit:    appCommit,
		BuildDate: appBuildDate,
		GoVersion: runtime.Version(),
		Gofulmen:  crucible.GetVersion().Gofulmen,
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	})
}
