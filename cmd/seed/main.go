package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/MGreizis/banana-counter/client"
)

// Seeds a running server with random increments so the widget has
// something to show.
func main() {
	base := flag.String("base", "http://localhost:8080", "base URL of the score service")
	users := flag.String("users", "alice,bob,carol,dave", "comma-separated user ids to seed")
	max := flag.Int("max", 10, "maximum increments per user")
	top := flag.Int("top", 10, "leaderboard size to print when done")
	flag.Parse()

	if *max < 1 {
		log.Fatal("max must be at least 1")
	}

	c, err := client.New(*base)
	if err != nil {
		log.Fatalf("create client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, user := range strings.Split(*users, ",") {
		user = strings.TrimSpace(user)
		if user == "" {
			continue
		}
		n := rand.Intn(*max) + 1
		var total int64
		for i := 0; i < n; i++ {
			total, err = c.Increment(ctx, user)
			if err != nil {
				log.Fatalf("increment %s: %v", user, err)
			}
		}
		fmt.Printf("%s: +%d (total %d)\n", user, n, total)
	}

	board, err := c.Leaderboard(ctx, *top)
	if err != nil {
		log.Fatalf("leaderboard: %v", err)
	}
	fmt.Println("leaderboard:")
	for i, e := range board {
		fmt.Printf("%2d. %-20s %d\n", i+1, e.User, e.Score)
	}
}
