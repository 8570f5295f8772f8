// cmd/genoscribe/main.go
package main

import (
	"fmt"
	"os"

	"github.com/genoscribe/genoscribe/cmd/genoscribe/commands"
	"github.com/genoscribe/genoscribe/pkg/engine"

	// Built-in report plugins register themselves at init time.
	_ "github.com/genoscribe/genoscribe/pkg/plugins/demo1"
	_ "github.com/genoscribe/genoscribe/pkg/plugins/demo2"
	_ "github.com/genoscribe/genoscribe/pkg/plugins/sample"
	_ "github.com/genoscribe/genoscribe/pkg/plugins/supplement"
)

func main() {
	if err := commands.NewCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(engine.ExitCode(err))
	}
}
