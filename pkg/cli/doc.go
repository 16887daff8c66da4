// Package cli implements the portfolio command-line interface.
//
// # Overview
//
// The portfolio binary runs the content API and carries the data manager
// used to maintain the document store behind it.
//
// # Commands
//
// serve - Run the API server:
//
//	portfolio serve [--port 8080]
//
// seed - Write the embedded datasets into the store:
//
//	portfolio seed --store sqlite --db portfolio.db [--category skills]
//
// backup - Copy every collection into backups/backup-<timestamp>/:
//
//	portfolio backup [--dir backups] [--collection projects]
//
// restore - Load a backup directory:
//
//	portfolio restore backups/backup-2024-06-01T12-00-00-000Z
//
// clear - Delete the content collections (requires --yes):
//
//	portfolio clear --yes [--category projects]
//
// count, list - Inspect the store:
//
//	portfolio count skills
//	portfolio list --format json
//
// token - Mint an admin bearer token for POST /admin/cache/clear:
//
//	PORTFOLIO_ADMIN_TOKEN_SECRET=... portfolio token --ttl 15m
//
// # Store Selection
//
// Data commands use --store (PORTFOLIO_STORE), sqlite by default. The SQLite
// path comes from --db (PORTFOLIO_SQLITE_PATH); Firestore uses --project
// (FIREBASE_PROJECT_ID) and --credentials (GOOGLE_APPLICATION_CREDENTIALS).
//
// # Output
//
// Results are written to stdout or --output in YAML (default), JSON or table
// format, selected with --format.
package cli
