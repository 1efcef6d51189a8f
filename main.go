package main

import (
	"os"
	"runtime"

	"github.com/rs/zerolog/log"

	"github.com/cursorcloak/cursorcloak/internal/cli"
)

func main() {
	// the tray event loop needs the main thread
	runtime.LockOSThread()

	if err := cli.Execute(); err != nil {
		log.Error().Err(err).Msg("cursorcloak")
		os.Exit(1)
	}
}
