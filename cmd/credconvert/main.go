// Command credconvert converts a Firebase service-account JSON file into
// the single-line FIREBASE_SERVICE_ACCOUNT environment variable expected
// by the server in production deployments.
package main

import (
	"encoding/json"
	"fmt"
	"os"
)

const defaultCredentialsFile = "firebase-service-account.json"

func main() {
	file := defaultCredentialsFile
	if len(os.Args) > 1 {
		file = os.Args[1]
	}

	if err := run(file); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("%s not found; download it from Firebase Console > Project Settings > Service Accounts", file)
	}

	// Round-trip through json to validate and collapse to one line.
	var cred map[string]any
	if err := json.Unmarshal(data, &cred); err != nil {
		return fmt.Errorf("invalid JSON in %s: %w", file, err)
	}

	line, err := json.Marshal(cred)
	if err != nil {
		return err
	}

	fmt.Println("Firebase service account converted successfully.")
	fmt.Println()
	fmt.Println("Add this to your environment variables:")
	fmt.Println("==================================================")
	fmt.Printf("FIREBASE_SERVICE_ACCOUNT=%s\n", line)
	fmt.Println("==================================================")
	fmt.Println()
	fmt.Println("For Railway/Render deployment:")
	fmt.Println("1. Copy the line above")
	fmt.Println("2. Paste it in your platform's environment variables")
	fmt.Println("3. Make sure to include the entire string (it's very long)")
	return nil
}
