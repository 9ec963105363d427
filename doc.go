// Package jstream provides an incremental, pull-based cursor over JSON
// byte sources that may be too large or too live to buffer entirely in
// memory.
//
// A [Cursor] binds a byte source to the incremental tokenizer in
// package parse, refilling a bounded buffer on demand and exposing the
// parsed structural events one at a time:
//
//	c, err := jstream.New(r)
//	if err != nil {
//	    return err
//	}
//	for {
//	    ev := c.Current()
//	    // use ev
//	    if c.Done() {
//	        break
//	    }
//	    if err := c.Next(); err != nil {
//	        return err
//	    }
//	}
//
// [Cursor.ReadTo] forwards all remaining events to a consumer-supplied
// visitor instead, and [Cursor.Filter] derives a view restricted by a
// predicate.
package jstream
