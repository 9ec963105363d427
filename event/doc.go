// Package event defines the structural events produced while streaming
// over a JSON document, and the visitor capability used to consume them.
//
// [Event] is a single structural notification: begin/end of a container,
// a key name, a scalar value, or the end of the document. Events are
// produced in document order by a cursor and delivered either to its
// internal cache (pull mode) or to a consumer-supplied [Visitor] (push
// mode).
//
// [Recorder] collects events and is the usual building block for tests
// and drains.
package event
