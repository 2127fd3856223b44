// Command xiangqi-selfplay drives one game to completion with both sides
// engine-controlled, mirroring the teacher's cmd/selfplay loop shape
// (search, apply, check for a terminal position, repeat) but delegating
// that loop to the AI driver's own self-play recursion instead of
// re-implementing it here.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"xiangqi/internal/aidriver"
	"xiangqi/internal/book"
	"xiangqi/internal/controller"
	"xiangqi/internal/enginebridge"
	"xiangqi/internal/enginebridge/enginetest"
)

func main() {
	engineCmd := flag.String("engine", "", "external UCI-speaking engine command; empty uses the built-in stand-in engine")
	redBookPath := flag.String("red-book", "", "path to a JSON opening book for red's first move")
	blackBookPath := flag.String("black-book", "", "path to a JSON opening book for black's first move")
	timeout := flag.Duration("timeout", 2*time.Minute, "give up and exit if the game has not finished by then")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var engine aidriver.Engine
	if *engineCmd != "" {
		bridge, err := enginebridge.New("")
		if err != nil {
			log.Fatalf("xiangqi-selfplay: opening result cache: %v", err)
		}
		defer bridge.Dispose()
		parts := strings.Fields(*engineCmd)
		if err := bridge.Initialize(ctx, parts[0], parts[1:]...); err != nil {
			log.Fatalf("xiangqi-selfplay: initializing engine: %v", err)
		}
		engine = bridge
	} else {
		log.Printf("xiangqi-selfplay: no -engine given, using the built-in stand-in engine")
		engine = enginetest.New()
	}

	ctrl, err := controller.New(controller.Options{AIEnabled: true, Engine: engine})
	if err != nil {
		log.Fatalf("xiangqi-selfplay: %v", err)
	}
	unsubscribe := ctrl.Subscribe(func(s controller.Snapshot) {
		log.Printf("--- move %d, turn %v, status %v ---", s.Stats.FullMoveCount, s.Turn, s.Status)
		if s.LastMove != nil && len(s.MoveHistory) > 0 {
			log.Printf("played: %s", s.MoveHistory[len(s.MoveHistory)-1].Notation())
		}
	})
	defer unsubscribe()

	driver := aidriver.New(ctrl, engine, 0)
	driver.SetSelfPlay(true)

	if redBook, blackBook, ok := loadBooks(*redBookPath, *blackBookPath); ok {
		driver.SetBooks(redBook, blackBook, rand.New(rand.NewSource(1)))
		if err := driver.PlayOpeningBookMove(ctx, ctrl.Turn()); err != nil {
			log.Printf("xiangqi-selfplay: opening book move skipped: %v", err)
		}
	}

	if err := driver.RunOpponentTurn(ctx); err != nil {
		log.Printf("xiangqi-selfplay: game ended with error: %v", err)
	}

	log.Printf("selfplay finished: status=%v moves=%d", ctrl.Status(), len(ctrl.MoveHistory()))
}

func loadBooks(redPath, blackPath string) (red, black *book.Book, ok bool) {
	if redPath == "" && blackPath == "" {
		return nil, nil, false
	}
	if redPath != "" {
		data, err := os.ReadFile(redPath)
		if err != nil {
			log.Printf("xiangqi-selfplay: reading red book: %v", err)
		} else if b, err := book.Load(data); err != nil {
			log.Printf("xiangqi-selfplay: parsing red book: %v", err)
		} else {
			red = b
		}
	}
	if blackPath != "" {
		data, err := os.ReadFile(blackPath)
		if err != nil {
			log.Printf("xiangqi-selfplay: reading black book: %v", err)
		} else if b, err := book.Load(data); err != nil {
			log.Printf("xiangqi-selfplay: parsing black book: %v", err)
		} else {
			black = b
		}
	}
	return red, black, true
}
