// Package reembed recomputes the stored embeddings of burial records, for
// example after switching embedding models.
//
// Records are processed in batches with retry and exponential backoff,
// progress is reported to a writer, and vectors are normalized to unit
// length before they are stored. A dry run only counts the records that
// would be processed.
package reembed
