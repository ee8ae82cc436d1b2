package update

import "errors"

// ErrCheckFailed marks a check() call that hit a network/parse failure;
// latest_version is left unmutated per spec.md §4.5's failure semantics.
var ErrCheckFailed = errors.New("update: version check failed")

// ErrNoUpdateAvailable is returned by Update() when check() has not
// observed a newer version.
var ErrNoUpdateAvailable = errors.New("update: no update available")

// ErrPackageManaged is returned by Update() when a `.pkgmanaged` sentinel
// marks this install as owned by a system package manager (Open Question 2
// — see DESIGN.md): the swap is refused in favor of directing the user to
// their package manager, mirroring update_manager.py's
// "Python-launched runs delegate to the package manager" branch.
var ErrPackageManaged = errors.New("update: this install is managed by a system package manager")
