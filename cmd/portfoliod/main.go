package main

import (
	"context"
	"log"

	"github.com/iamsank8/portfolio/pkg/api"
)

func main() {
	if err := api.Serve(context.Background()); err != nil {
		log.Fatal(err)
	}
}
