//go:build ignore

// Prints a bcrypt hash for seeding a hotel row by hand:
//
//	go run scripts/hash-password.go <password> [cost]
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/soycar/hotel-portal/internal/password"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: go run scripts/hash-password.go <password> [cost]\n")
		os.Exit(1)
	}

	cost := 12
	if len(os.Args) > 2 {
		c, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid cost %q\n", os.Args[2])
			os.Exit(1)
		}
		cost = c
	}

	if len(os.Args[1]) < password.MinLength {
		fmt.Fprintf(os.Stderr, "Error: password must be at least %d characters\n", password.MinLength)
		os.Exit(1)
	}

	hash, err := password.NewHasher(cost).Hash(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
