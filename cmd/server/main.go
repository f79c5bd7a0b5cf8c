// Command server serves the word lookup REST API.
package main

import (
	"context"
	"log"

	"github.com/heartmarshall/wordlookup/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
