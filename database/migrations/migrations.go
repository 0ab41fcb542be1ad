// Package migrations holds every schema migration. Each file registers
// itself via init(); the package is imported for side effects by the CLI
// and the server bootstrap.
package migrations
