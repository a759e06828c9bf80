// Package transform holds the Transformer Unit: the runtime artifact built
// for one accepted injection point.
//
// A Unit names exactly one target class, always votes to proceed, and on
// each Transform call locates the first method record whose name and
// descriptor both match its target, replays its argument plan and invokes
// the injection body. Every failure is contained in the single call: the
// class is handed back as-is and the failure is logged once.
package transform
