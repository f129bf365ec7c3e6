// Command inventario expone el libro de inventario por línea de comandos y HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/jhoicas/inventario-ledger/internal/interfaces/cli"
)

// Inyectadas con -ldflags en el build.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: Version, BuildTime: BuildTime})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
