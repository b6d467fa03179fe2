// Package progress defines the progress reporting primitives shared by the
// calculation strategies and their consumers: the update type carried over
// channels, the observer registry used to fan updates out, and the work
// models that turn loop iterations or recursion counts into a 0..1 fraction.
package progress
