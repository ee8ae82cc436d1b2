// Package update implements the Update Manager (spec.md §4.5): throttled
// release checks against a GitHub-shaped release index, version listing,
// and a staged binary swap, grounded line-for-line on
// original_source/core/update_manager.py for version comparison, asset
// selection, and the staged-swap shape.
package update

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fastxteam/fastx-tui/internal/interfaces"
)

// httpClient is the narrow surface Manager needs from interfaces.HTTPClient,
// named locally so this package's exported API doesn't leak the port name.
type httpClient = interfaces.HTTPClient

// appConfig is the narrow configstore.Store surface for reading
// auto_check_updates/check_interval, kept as an interface so this package
// doesn't import internal/configstore directly.
type appConfig interface {
	GetApp(key string) (interface{}, bool)
}

const (
	defaultCheckInterval = 24 * time.Hour
	pkgManagedSentinel   = ".pkgmanaged"
)

// CheckResult is check()'s return shape (spec.md §4.5).
type CheckResult struct {
	UpdateAvailable bool
	LatestVersion   string
	Assets          []Asset
	Failed          bool
}

// Result is Update()'s outcome.
type Result struct {
	Staged     bool
	HelperPath string
}

// Manager is the Update Manager.
type Manager struct {
	currentVersion string
	repo           string
	client         httpClient
	fs             interfaces.FileSystem
	exec           interfaces.CommandExecutor
	clock          interfaces.Clock
	logger         interfaces.Logger
	config         appConfig

	mu              sync.Mutex
	lastCheckTime   time.Time
	latestVersion   string
	updateAvailable bool
	checkFailed     bool
	assets          []Asset
}

// New creates a Manager for currentVersion against repo
// ("fastxteam/FastX-Tui"-shaped "owner/name").
func New(currentVersion, repo string, client httpClient, fs interfaces.FileSystem, exec interfaces.CommandExecutor, clock interfaces.Clock, config appConfig, logger interfaces.Logger) *Manager {
	return &Manager{
		currentVersion: currentVersion,
		repo:           repo,
		client:         client,
		fs:             fs,
		exec:           exec,
		clock:          clock,
		config:         config,
		logger:         logger,
	}
}

func (m *Manager) checkInterval() time.Duration {
	if m.config == nil {
		return defaultCheckInterval
	}
	raw, ok := m.config.GetApp("check_interval_hours")
	if !ok {
		return defaultCheckInterval
	}
	hours, ok := raw.(float64)
	if !ok || hours <= 0 {
		return defaultCheckInterval
	}
	return time.Duration(hours * float64(time.Hour))
}

func (m *Manager) autoCheckEnabled() bool {
	if m.config == nil {
		return true
	}
	raw, ok := m.config.GetApp("auto_check_updates")
	if !ok {
		return true
	}
	enabled, ok := raw.(bool)
	if !ok {
		return true
	}
	return enabled
}

// Check consults the release index, throttled to at most once per
// check_interval unless force is set; a disabled auto_check_updates setting
// also short-circuits unless forced (§4.5, mirroring check_version_update).
func (m *Manager) Check(ctx context.Context, force bool) (CheckResult, error) {
	m.mu.Lock()
	if !force && !m.autoCheckEnabled() {
		result := CheckResult{UpdateAvailable: m.updateAvailable, LatestVersion: m.latestVersion}
		m.mu.Unlock()
		return result, nil
	}

	now := m.clock.Now()
	if !force && m.lastCheckTime.After(time.Time{}) && now.Sub(m.lastCheckTime) < m.checkInterval() {
		result := CheckResult{UpdateAvailable: m.updateAvailable, LatestVersion: m.latestVersion}
		m.mu.Unlock()
		return result, nil
	}
	m.lastCheckTime = now
	m.mu.Unlock()

	release, err := m.fetchLatestRelease()
	if err != nil {
		m.mu.Lock()
		m.checkFailed = true
		m.mu.Unlock()
		m.logger.Errorw("version check failed", "error", err)
		return CheckResult{Failed: true}, ErrCheckFailed
	}

	latest := release.Version()
	available := IsNewer(m.currentVersion, latest)

	m.mu.Lock()
	m.checkFailed = false
	m.latestVersion = latest
	m.updateAvailable = available
	m.assets = release.Assets
	m.mu.Unlock()

	m.logger.Infow("version check succeeded", "current", m.currentVersion, "latest", latest, "update_available", available)
	return CheckResult{UpdateAvailable: available, LatestVersion: latest, Assets: release.Assets}, nil
}

func (m *Manager) fetchLatestRelease() (Release, error) {
	var release Release
	url := fmt.Sprintf("https://api.github.com/repos/%s/releases/latest", m.repo)
	if err := fetchJSON(m.client, url, &release); err != nil {
		return Release{}, err
	}
	return release, nil
}

// ListVersions returns up to limit releases, newest first, richer than
// check()'s tuple (SPEC_FULL.md supplemented feature, matching
// get_available_versions).
func (m *Manager) ListVersions(limit int) ([]Release, error) {
	if limit <= 0 {
		limit = 10
	}
	var releases []Release
	url := fmt.Sprintf("https://api.github.com/repos/%s/releases?per_page=%d", m.repo, limit)
	if err := fetchJSON(m.client, url, &releases); err != nil {
		return nil, err
	}
	if len(releases) > limit {
		releases = releases[:limit]
	}
	return releases, nil
}

// Describe produces a human-readable update-available message, restoring
// get_update_message as a pure helper (SPEC_FULL.md supplemented feature).
func (m *Manager) Describe() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.updateAvailable || m.latestVersion == "" {
		return ""
	}
	return fmt.Sprintf("FastX-Tui has a new version available: %s -> %s\nSee https://github.com/%s/releases/latest", stripV(m.currentVersion), m.latestVersion, m.repo)
}

// Update downloads the matching asset and stages a binary swap at
// currentExePath, refusing if no update was found by a prior Check or if a
// package-manager sentinel marks this install as externally managed (Open
// Question 2).
func (m *Manager) Update(ctx context.Context, currentExePath string) (Result, error) {
	m.mu.Lock()
	available := m.updateAvailable
	latest := m.latestVersion
	assets := m.assets
	m.mu.Unlock()

	if !available || latest == "" {
		return Result{}, ErrNoUpdateAvailable
	}

	sentinelPath := filepath.Join(filepath.Dir(currentExePath), pkgManagedSentinel)
	if m.fs.Exists(sentinelPath) {
		return Result{}, ErrPackageManaged
	}

	assetURL, err := selectAsset(assets, latest)
	if err != nil {
		return Result{}, err
	}

	data, status, err := m.client.Get(assetURL)
	if err != nil {
		return Result{}, fmt.Errorf("update: downloading %s: %w", assetURL, err)
	}
	if status < 200 || status >= 300 {
		return Result{}, fmt.Errorf("update: download of %s returned status %d", assetURL, status)
	}
	if len(data) == 0 {
		return Result{}, fmt.Errorf("update: downloaded asset was empty")
	}

	newExePath := currentExePath + "_new"
	if err := m.fs.WriteFile(newExePath, data, 0755); err != nil {
		return Result{}, fmt.Errorf("update: writing downloaded binary: %w", err)
	}

	helperPath, err := stageSwap(ctx, m.fs, m.exec, currentExePath, newExePath)
	if err != nil {
		_ = m.fs.Remove(newExePath)
		return Result{}, err
	}

	return Result{Staged: true, HelperPath: helperPath}, nil
}

// VersionInfo mirrors get_version_info's snapshot.
type VersionInfo struct {
	CurrentVersion     string
	LatestVersion      string
	UpdateAvailable    bool
	VersionCheckFailed bool
}

// Info returns the Manager's current cached state.
func (m *Manager) Info() VersionInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return VersionInfo{
		CurrentVersion:     m.currentVersion,
		LatestVersion:      m.latestVersion,
		UpdateAvailable:    m.updateAvailable,
		VersionCheckFailed: m.checkFailed,
	}
}
