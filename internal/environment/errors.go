package environment

import "errors"

// ErrEnvCreateFailed is returned when neither the fast creator tool nor the
// fallback mechanism could provision the environment directory.
var ErrEnvCreateFailed = errors.New("environment: create failed")

// ErrEnvSyncFailed is returned when environment creation succeeded but
// dependency synchronization against the plugin's manifest did not.
var ErrEnvSyncFailed = errors.New("environment: sync failed")
