// Command dockctl inspects, builds and stores dockgui layouts.
//
//	dockctl tree dockgui.ini
//	dockctl build layout.star --name main
//	dockctl watch dockgui.ini
package main

import (
	"os"

	"github.com/go-theft-auto/dockgui/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
