// cmd/fragasm/main.go
package main

import (
	"fragasm/internal/app"
	"fragasm/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
