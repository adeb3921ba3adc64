// Command teamsheet imports teams and players from a spreadsheet and manages
// the database schema they are stored in.
package main

func main() {
	Execute()
}
