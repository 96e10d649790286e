package cli

// Version is the running build's version, set with
// -ldflags "-X github.com/Fepozopo/rasterkit/pkg/cli.Version=1.2.3".
var Version = "dev"
