package update

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/fastxteam/fastx-tui/internal/interfaces"
)

// unixSwapScript mirrors _update_from_exe's batch script, generalized to a
// POSIX shell script since the Go binary targets both platforms
// (SPEC_FULL.md §5, "adapted, not copied verbatim, and generalized to unix
// too").
const unixSwapScript = `#!/bin/sh
sleep 2
rm -f "%s"
mv "%s" "%s"
chmod +x "%s"
"%s" &
rm -- "$0"
`

// windowsSwapScript is a close port of the source's literal batch script.
const windowsSwapScript = `@echo off
timeout /t 2 /nobreak >nul
if exist "%s" del "%s"
rename "%s" "%s"
start "" "%s"
if exist "%%~f0" del "%%~f0"
`

// stageSwap does not download: newExePath's content is assumed already
// fetched by the caller. stageSwap writes the platform helper script beside
// currentExePath and starts it without waiting, returning the helper's
// path. Every step is validated; a failure at any point leaves
// currentExePath untouched (spec.md §4.5 "Any step failure aborts the swap
// and leaves the old binary in place").
func stageSwap(ctx context.Context, fs interfaces.FileSystem, exec interfaces.CommandExecutor, currentExePath, newExePath string) (string, error) {
	dir := filepath.Dir(currentExePath)
	currentName := filepath.Base(currentExePath)

	if runtime.GOOS == "windows" {
		scriptPath := filepath.Join(dir, "fastx-tui_update.bat")
		content := fmt.Sprintf(windowsSwapScript, currentExePath, currentExePath, newExePath, currentName, currentExePath)
		if err := fs.WriteFile(scriptPath, []byte(content), 0644); err != nil {
			return "", fmt.Errorf("update: writing swap script: %w", err)
		}
		if _, err := exec.Start("cmd.exe", "/c", scriptPath); err != nil {
			return "", fmt.Errorf("update: launching swap script: %w", err)
		}
		return scriptPath, nil
	}

	scriptPath := filepath.Join(dir, "fastx-tui_update.sh")
	content := fmt.Sprintf(unixSwapScript, currentExePath, newExePath, currentExePath, currentExePath, currentExePath)
	if err := fs.WriteFile(scriptPath, []byte(content), 0755); err != nil {
		return "", fmt.Errorf("update: writing swap script: %w", err)
	}
	if _, err := exec.Start("sh", scriptPath); err != nil {
		return "", fmt.Errorf("update: launching swap script: %w", err)
	}
	return scriptPath, nil
}
