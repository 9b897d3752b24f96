// Package memory provides in-memory repositories for tests and the memory
// store driver. They mirror the mongo repositories' semantics: stored
// documents are copied on every read and write, partner saves are version
// checked, and service stats are applied once per sale.
package memory
