// Package discodex provides a CLI-based scraper for the Discogs music
// catalog. It walks paginated search listings to collect artist/album/URL
// triples, visits each release page to extract pricing and collection
// statistics, normalizes the extracted text into canonical field values,
// and exports the results as CSV.
//
// This package contains domain types, interfaces, and the pure
// normalization pipeline following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, rod/, sqlite/).
package discodex
