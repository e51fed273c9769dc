// Package epubsub contains the single-writer, many-reader event list
// that backs eddy's hot sources.
//
// The [Stream] type lets a single publisher hand the same sequence of values,
// followed by an optional terminal error, to many concurrent readers
// who each consume it at their own pace.
package epubsub
