// Command xiangqi-server hosts the JSON API over internal/httpapi, backed
// by a subprocess-managed external engine.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"strings"
	"time"

	"xiangqi/internal/enginebridge"
	"xiangqi/internal/httpapi"
)

func main() {
	addr := flag.String("addr", ":2888", "listen address")
	webDir := flag.String("web", "./web", "directory with static front-end assets")
	engineCmd := flag.String("engine", "", "external UCI-speaking engine command (space-separated, e.g. \"./engine --uci\")")
	cacheDir := flag.String("cache", "", "badger cache directory for evaluate/analyze results (empty = in-memory)")
	presentationDelayMs := flag.Int64("presentation-delay-ms", 300, "pause before an AI reply is requested, milliseconds")
	flag.Parse()

	bridge, err := enginebridge.New(*cacheDir)
	if err != nil {
		log.Fatalf("xiangqi-server: opening result cache: %v", err)
	}
	defer bridge.Dispose()

	if *engineCmd != "" {
		parts := strings.Fields(*engineCmd)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := bridge.Initialize(ctx, parts[0], parts[1:]...); err != nil {
			log.Fatalf("xiangqi-server: initializing engine: %v", err)
		}
	} else {
		log.Printf("xiangqi-server: no -engine given, running without engine validation (local rules only)")
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", httpapi.NewHandler(bridge, *presentationDelayMs))
	mux.Handle("/", http.FileServer(http.Dir(*webDir)))

	log.Printf("xiangqi-server: listening on %s, serving static from %s", *addr, *webDir)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal(err)
	}
}
