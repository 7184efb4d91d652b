package config

// Version is the capec-rel binary version.
// Set at build time via: -ldflags "-X github.com/Bama-S/capec-rel/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
