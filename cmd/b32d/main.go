package main

import "os"

func main() {
	// Errors already carry context from the failing layer; a non-zero exit
	// is what the supervisor (or the container runtime) keys off.
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
