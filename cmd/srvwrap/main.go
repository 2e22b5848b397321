package main

import (
	"github.com/rdesantis/srvwrap/internal/cli"
	"github.com/rdesantis/srvwrap/internal/metrics"
)

func main() {
	metrics.EmitBuildInfo()
	cli.Execute()
}
