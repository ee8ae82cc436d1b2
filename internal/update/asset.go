package update

import (
	"fmt"
	"runtime"
	"strings"
)

var excludedAssetKeywords = []string{"source", "src", ".zip", ".tar", ".gz", ".7z", ".whl"}

// platformToken maps runtime.GOOS to the source's platform identifier
// ("win"/"linux"); any other GOOS is unsupported for the staged-swap path.
func platformToken() (string, bool) {
	switch runtime.GOOS {
	case "windows":
		return "win", true
	case "linux":
		return "linux", true
	default:
		return "", false
	}
}

// selectAsset implements _get_exe_download_url's matching rule: a Windows
// asset ends in ".exe"; a Linux asset has no extension or ends in "-linux";
// assets whose name contains any excluded keyword never match. Falls back
// to a conventional URL whenever no match is found — whether no assets
// were returned at all, or assets were returned but none matched (spec.md
// §4.5: "If no match is found and assets were returned, a fallback URL is
// constructed"). This is broader than original_source/core/update_manager.py's
// `_get_exe_download_url`, which only falls back when assets is empty and
// otherwise errors; the spec's fallback promise is not conditioned on why
// matching failed, so this module honors it in both cases.
func selectAsset(assets []Asset, version string) (string, error) {
	token, ok := platformToken()
	if !ok {
		return "", fmt.Errorf("update: unsupported platform %q for staged swap", runtime.GOOS)
	}

	for _, asset := range assets {
		name := strings.ToLower(asset.Name)
		if containsAny(name, excludedAssetKeywords) {
			continue
		}

		isWindowsMatch := token == "win" && strings.HasSuffix(name, ".exe")
		isLinuxMatch := token == "linux" && (noExtension(name) || strings.HasSuffix(name, "-linux"))

		if isWindowsMatch || isLinuxMatch {
			return asset.BrowserDownloadURL, nil
		}
	}

	return fallbackURL(token, version), nil
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func noExtension(name string) bool {
	i := strings.LastIndex(name, ".")
	return i < 0
}

func fallbackURL(token, version string) string {
	base := "fastx-tui-" + token
	if token == "win" {
		base += ".exe"
	}
	return fmt.Sprintf("https://github.com/fastxteam/FastX-Tui/releases/download/v%s/%s", version, base)
}
