// Package rules provides the pattern registry that dispatches tag paths to rules.
//
// A rule pairs a pattern with a raw action string and the kind of rule it was
// declared as (for example SUB). Rules of one kind live in one Registry.
//
// # Pattern Conventions
//
// Patterns are compared after trimming and lower-casing:
//
//   - `gene/mrna/cds` - Exact tag path match
//   - `gene/@MRNA/@CDS` - Alias-bearing pattern, matched by regex after maturation
//
// # Matching Order
//
// Lookup checks the exact index first and returns every rule registered under
// the pattern, in registration order. Only when there is no exact hit are the
// matured regex rules scanned, in maturation order; the first one matching the
// whole tag path wins and its named groups are returned as captures.
//
// # Maturation
//
// Alias-bearing patterns stay pending until Mature is called with a Resolver.
// A pattern the resolver leaves unchanged falls back to the exact index. Mature
// must complete before lookups start; afterwards a Registry is read-only and can
// be shared between goroutines.
package rules
