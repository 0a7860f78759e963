// Command camctl manages a camera registry from the terminal: it talks to the
// REST API for day-to-day edits and writes straight to the store for seeding.
package main

func main() {
	Execute()
}
