// Package pipeline is the host-side adapter that presents parsed classes to
// registered transformers.
//
// Transformers are registered once, in order, into a Registry. For each
// class the Pipeline collects votes from the transformers targeting it, runs
// the ones voting yes serially in registration order, and, when rollback is
// enabled, substitutes an untouched copy of the class for any transformer
// whose injection failed. Independent classes are transformed in parallel.
package pipeline
