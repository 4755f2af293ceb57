package commands

import (
	"github.com/hoardsec/hoard/internal/config"
	"github.com/hoardsec/hoard/internal/engine"
	herrors "github.com/hoardsec/hoard/internal/errors"
	"github.com/hoardsec/hoard/internal/index"
	"github.com/hoardsec/hoard/internal/keyringstore"
	"github.com/hoardsec/hoard/internal/secret"
	"github.com/hoardsec/hoard/internal/source"
)

// buildEngine wires the real collaborators (OS keyring, index file,
// process executor) into a refresh engine.
func buildEngine(cfg *config.Config) (*engine.Engine, error) {
	indexPath, err := cfg.IndexPath()
	if err != nil {
		return nil, err
	}

	store := keyringstore.New(cfg.Logger)
	listing := index.NewFile(indexPath)
	resolver := source.New(cfg.Logger)

	return engine.New(store, listing, resolver, cfg.Logger), nil
}

// requireNamespace resolves the effective namespace from the flag or
// the config default.
func requireNamespace(cfg *config.Config, flag string) (string, error) {
	ns, ok := cfg.Namespace(flag)
	if !ok {
		return "", herrors.UsageError{
			Message:    "namespace is required",
			Suggestion: "pass -n/--namespace or set default_namespace in hoard.yaml",
		}
	}
	return ns, nil
}

// sourceOverride maps the --source-sh/--source-cmd flag pair (already
// known to be mutually exclusive) onto an engine override.
func sourceOverride(sourceSh, sourceCmd string) *engine.SourceOverride {
	switch {
	case sourceSh != "":
		return &engine.SourceOverride{Command: sourceSh, Mode: secret.ModeShell}
	case sourceCmd != "":
		return &engine.SourceOverride{Command: sourceCmd, Mode: secret.ModeDirect}
	default:
		return nil
	}
}
