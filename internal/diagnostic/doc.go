// Package diagnostic provides structured findings produced while scanning
// patches and validating mapping tables.
//
// Key capabilities:
//   - Skipped injections and the service flag that decided them
//   - Ignored declarations (missing callable or target metadata)
//   - Malformed or duplicate entries in a mapping table
package diagnostic
