// Package source provides the byte-source adapters a cursor reads
// from: an incremental [Stream] over an io.Reader and a fixed [Bytes]
// view over pre-materialized input, behind the common [Source]
// contract.
package source
