// Package main provides the CLI for managing the Faction platform database.
//
// The CLI supports:
//   - upgrade: Apply migration steps forward to a target version (default head)
//   - downgrade: Revert migration steps back to a target version
//   - status: Show the database's current chain position
//   - history: List the migration chain from root to head
//   - validate: Check the chain's structural invariants without a database
//
// Commands that touch the database (upgrade, downgrade, status) need --db or
// a configured database URL. validate and history work offline.
package main

func main() {
	Execute()
}
