// Package parse implements an incremental, resumable JSON tokenizer.
//
// A [Parser] consumes input one chunk at a time via [Parser.Update] and
// never reads past the chunk it was handed. [Parser.ParseSome] consumes
// as much buffered input as it can, delivering events to a visitor and
// pausing at each event boundary; [Parser.Restart] begins the search
// for the next boundary. The parser can suspend in the middle of any
// token, including strings with escape sequences and numbers, and
// resume on the next chunk with no loss or duplication.
//
// The parser tracks a 1-based line/column position for diagnostics and
// the depth and kinded path of the value under construction.
package parse
