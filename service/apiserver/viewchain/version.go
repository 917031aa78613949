package viewchain

// Version is set at build time with -ldflags "-X .../viewchain.Version=..."
var Version = "dev"

func GetVersion() string {
	return Version
}
