// Package repository implements data access against SurrealDB.
//
// Each repository wraps the database.Database interface and translates
// between SurrealDB records and the model types. Record IDs use the
// "table:id" string form throughout the API; links between records are
// stored as SurrealDB record links and converted back on read.
//
// Multi-record writes that must succeed together (event creation, poll
// creation, cascading deletes) go through the transaction utilities in
// the database package.
package repository
