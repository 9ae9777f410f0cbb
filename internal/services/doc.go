// Package services implements HTTP clients for the airplay admin backend.
//
// # Catalog Interface
//
// [Catalog] is the typed surface the rest of the program consumes: artist and
// song search, song metadata, weekly play series, and the station directory.
// [CatalogService] implements it against the backend's JSON endpoints.
//
// # Search Endpoints
//
// SearchArtists and SearchSongs call GET /api/search/artists and
// GET /api/search/songs with the query URL-escaped in the q parameter. Their
// signatures match the typeahead package's Searcher contract, so a catalog
// method can be bound to a suggestion field directly.
//
// # Raw Access
//
// [APIService] makes untyped requests against arbitrary backend paths for the
// `api` debugging commands, with gjson-based field extraction on responses.
//
// # Error Handling
//
// Non-success statuses and transport failures surface as errors wrapping
// [shared.ErrAPIRequest]; callers decide whether to report or swallow them.
// The typeahead layer swallows, the CLI reports.
package services
