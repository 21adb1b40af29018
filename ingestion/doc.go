// Package ingestion loads burial records into a record repository.
//
// The Pipeline type manages the import workflow:
//   - Validating records and rejecting the invalid ones
//   - Skipping burials whose content fingerprint is already stored
//   - Adding the remaining records to storage
//   - Generating embeddings of each record's search text asynchronously
//
// Embedding is performed on a worker pool. Errors during async processing
// are logged but do not fail the ingestion; records without a vector are
// still searchable by keyword.
//
// DecodeRecords reads the JSON Lines import format.
package ingestion
