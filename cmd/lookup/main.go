// Command lookup is an interactive terminal front end for word lookups.
//
// Every line read from stdin is treated as a text selection and looked up.
// A line consisting of ":toggle" switches between American and British
// English. Text typed on the Russian keyboard layout is mapped to Latin.
//
// Usage:
//
//	lookup [-region us|gb]
//
// The dictionary backend and its credentials come from the usual
// configuration (DICTIONARY_PROVIDER, OXFORD_APP_ID, OXFORD_APP_KEY or
// config.yaml).
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/heartmarshall/wordlookup/internal/app"
	"github.com/heartmarshall/wordlookup/internal/config"
	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/internal/service/lookup"
)

const toggleCommand = ":toggle"

func main() {
	regionFlag := flag.String("region", "", "dictionary region: us or gb (default from config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	region := cfg.Oxford.Region()
	if *regionFlag != "" {
		region, err = domain.ParseRegion(*regionFlag)
		if err != nil {
			log.Fatalf("region: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := lookup.NewService(logger, app.NewDictionary(cfg, logger), nil, nil, cfg.Cache,
		lookup.WithLookupTimeout(app.LookupTimeout(cfg)))

	out := newRenderer(os.Stdout)
	machine := lookup.NewMachine(logger, svc, region,
		lookup.WithStateHook(out.State),
		lookup.WithErrorHook(func(word string, err error) {
			fmt.Fprintf(os.Stderr, "lookup %q failed: %v\n", word, err)
		}),
	)

	fmt.Printf("Dictionary: %s English (type %s to switch)\n", machine.RegionLabel(), toggleCommand)

	events := make(chan lookup.SelectionEvent, 16)
	go readSelections(ctx, os.Stdin, machine, events)

	if err := machine.Run(ctx, events); err != nil && ctx.Err() == nil {
		logger.Error("lookup loop failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// readSelections forwards stdin lines to events and closes it on EOF.
func readSelections(ctx context.Context, in io.Reader, m *lookup.Machine, events chan<- lookup.SelectionEvent) {
	defer close(events)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == toggleCommand {
			m.ToggleRegion()
			fmt.Printf("Dictionary: %s English\n", m.RegionLabel())
			continue
		}

		select {
		case events <- lookup.SelectionEvent{Source: line}:
		case <-ctx.Done():
			return
		}
	}
}
