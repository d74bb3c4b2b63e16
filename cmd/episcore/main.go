// cmd/episcore/main.go
package main

import (
	"episcore/internal/app"
	"episcore/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
