package main

import (
	"go.uber.org/fx"

	"github.com/figureworks/backoffice/internal/app"
)

func main() {
	fx.New(app.Module).Run()
}
