package main

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Generates an API key and the bcrypt hash to put in API_KEY_HASH. Pass a
// key as the first argument to hash an existing one instead.
func main() {
	key := uuid.NewString()
	if len(os.Args) > 1 && os.Args[1] != "" {
		key = os.Args[1]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash API key: %v", err)
	}

	fmt.Printf("✅ API key generated\n")
	fmt.Printf("   Key (give to clients):   %s\n", key)
	fmt.Printf("   API_KEY_HASH (server):   %s\n", string(hash))
}
