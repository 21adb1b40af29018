// Package variants holds the static name-variant and phonetic primitives
// used to interpret and rank burial searches: a bidirectional English and
// Filipino nickname table, Soundex, Levenshtein distance and text folding.
//
// Every value in this package is immutable after process start and safe
// for concurrent use.
package variants
