// Package core fetches a published CSV sheet and turns it into a keyed lookup
// table.
//
// This package holds all domain logic, independent of any transport. It is
// used by the HTTP server, the console tool and tests without modification.
//
// # Pipeline
//
// A run has three stages, executed strictly in order:
//
//  1. [HTTPFetcher.Fetch] downloads the document with a single GET
//  2. [Parse] decodes the CSV into ordered [Row] values
//  3. [Reformatter.Reformat] folds the rows into a [Mapping]
//
// The key column is the one whose header is the empty string. Its value
// becomes the mapping key and the column is dropped from the stored row:
//
//	,USD,EUR
//	USA,1.0,0.9
//
// becomes
//
//	{"USA": {"USD": "1.0", "EUR": "0.9"}}
//
// With [ReformatOptions.TrackSupported] the mapping also lists every non-key
// header under a reserved field ("SUPPORTED" by default).
//
// Runs share no mutable state. A server that wants to bound load on the
// source puts a [FetchLimiter] in front of [Pipeline.Start].
//
// # Errors
//
// Failures are reported, never logged, as [ConfigurationError], [FetchError]
// or [ParseError]. Callers render them; [MapError] gives a stable code.
package core
