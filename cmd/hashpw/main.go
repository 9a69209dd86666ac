// Command hashpw generates a bcrypt hash for seeding user records by hand.
// The password is read from the terminal without echo.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		log.Fatalf("reading password: %v", err)
	}

	fmt.Fprint(os.Stderr, "Confirm: ")
	confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		log.Fatalf("reading confirmation: %v", err)
	}

	if string(password) != string(confirm) {
		log.Fatal("passwords do not match")
	}
	if len(password) == 0 {
		log.Fatal("password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword(password, *cost)
	if err != nil {
		log.Fatalf("hashing: %v", err)
	}

	fmt.Println(string(hash))
}
