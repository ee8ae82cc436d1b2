package registry

import (
	"errors"
	"fmt"
)

// ErrPluginNotFound is returned when an operation names a plugin ID the
// registry has never discovered or has removed.
var ErrPluginNotFound = errors.New("registry: plugin not found")

// ErrPluginAlreadyExists is returned by Install-style flows (outside this
// package's scope) attempting to install over a directory that already
// contains a valid plugin; kept here as the shared sentinel (§7, S2).
var ErrPluginAlreadyExists = errors.New("registry: plugin already exists")

// PluginLoadFailedError records why a plugin's load pipeline aborted:
// missing catalog entry, invalid metadata, or Initialize returning an
// error (§7 PluginLoadFailed).
type PluginLoadFailedError struct {
	PluginID string
	Reason   string
}

func (e *PluginLoadFailedError) Error() string {
	return fmt.Sprintf("registry: load failed for %s: %s", e.PluginID, e.Reason)
}

// IDConflictError records that pluginID attempted to register conflictID,
// which was already present in the graph; the individual registration is
// rejected but the plugin's other registrations proceed (§7). RegisterAll
// does not return or store this error: it surfaces a collision as a log
// line naming the attempting plugin.
type IDConflictError struct {
	PluginID   string
	ConflictID string
}

func (e *IDConflictError) Error() string {
	return fmt.Sprintf("registry: %s attempted to register already-present ID %q", e.PluginID, e.ConflictID)
}
