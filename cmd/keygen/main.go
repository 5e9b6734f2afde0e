// Command keygen mints an owner API key for the agent. The plain key is
// printed once and handed to the owner; only the bcrypt hash is configured
// on the agent via OWNER_API_KEY_HASH.
package main

import (
	"fmt"
	"log"

	"github.com/gregsantos/ip-derivative-agent/internal/helpers"
)

func main() {
	key, err := helpers.GenerateAPIKey()
	if err != nil {
		log.Fatalf("Failed to generate API key: %v", err)
	}

	hash, err := helpers.HashAPIKey(key)
	if err != nil {
		log.Fatalf("Failed to hash API key: %v", err)
	}

	fmt.Printf("API key:             %s\n", key)
	fmt.Printf("OWNER_API_KEY_HASH:  %s\n", hash)
	fmt.Println()
	fmt.Println("Give the key to the agent owner and set the hash in the agent's environment.")
}
