// Package docidx loads and queries documentation search indexes.
//
// A search index is the static artifact a documentation generator writes
// next to the rendered site (for Documenter this is search_index.js): a
// list of entries, one per documentation anchor, each carrying a location,
// page, title, text and category. docidx parses these indexes, tracks them
// per documentation site, and answers keyword lookups and ranked searches
// over them from the command line.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, bleve/, goquery/).
package docidx
