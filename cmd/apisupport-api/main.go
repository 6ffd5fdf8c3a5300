// @title         apisupport API
// @version       0.1.0
// @description   Cursor paginated, date versioned queue listings

package main

import (
	"os"

	"apisupport/internal/platform/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger.Get().Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
