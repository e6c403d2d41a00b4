// Command operator_key issues a fresh operator key and prints the bcrypt
// hash to configure as OPERATOR_KEY_HASH. Pass a key as the first argument
// to hash it instead of generating one.
package main

import (
	"fmt"
	"log"
	"os"

	"ledgerguard/internal/utils"
)

func main() {
	var key string
	if len(os.Args) > 1 {
		key = os.Args[1]
	} else {
		generated, err := utils.GenerateOperatorKey()
		if err != nil {
			log.Fatal("Failed to generate operator key:", err)
		}
		key = generated
	}

	hash, err := utils.HashOperatorKey(key)
	if err != nil {
		log.Fatal("Failed to hash operator key:", err)
	}

	fmt.Printf("OPERATOR_KEY=%s\n", key)
	fmt.Printf("OPERATOR_KEY_HASH=%s\n", hash)
}
