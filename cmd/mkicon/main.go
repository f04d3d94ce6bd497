// mkicon renders a single chat-bubble icon PNG at an arbitrary size.
// Usage: mkicon <size> <output.png>
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/miuchi/chaticons/internal/icon"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: mkicon <size> <output.png>\n")
		os.Exit(1)
	}

	size, err := strconv.Atoi(os.Args[1])
	if err != nil || size <= 0 {
		fmt.Fprintf(os.Stderr, "Error: size must be a positive integer\n")
		os.Exit(1)
	}

	if err := icon.Generate(size, os.Args[2]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated: %s (%dx%d)\n", os.Args[2], size, size)
}
