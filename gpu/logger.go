package gpu

import (
	"log/slog"

	"github.com/gogpu/textatlas"
)

// slogger returns the logger configured with textatlas.SetLogger.
// All logging in gpu goes through this function.
func slogger() *slog.Logger { return textatlas.Logger() }
