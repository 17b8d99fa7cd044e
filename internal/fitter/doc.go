// Package fitter searches a codec quality axis for the encoding whose output
// size lands closest to a caller-supplied byte target.
//
// The search is a bounded binary search biased by output size: larger than
// target narrows toward lower quality, smaller narrows toward higher. Codec
// output is only weakly monotonic in quality, so the bisection is a heuristic;
// the contract compensates by always returning the best trial seen across the
// whole search, not the last one. Encoding is injected as a capability so the
// algorithm stays free of file and codec concerns and can be tested against a
// deterministic in-memory size model.
//
// Fit performs no I/O and no logging. Callers that need trial-level telemetry
// wrap the EncodeFunc they pass in.
package fitter
