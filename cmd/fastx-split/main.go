// cmd/fastx-split/main.go
package main

import (
	"fastxsplit/internal/app"
	"fastxsplit/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
