// Package models defines domain entities and persistence interfaces for the spintrack airplay client.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing backend API data
//   - [SearchResult] : id/label pair returned by the search endpoints
//   - [SongMeta] : Song metadata with its artist references
//   - [Station] : Radio station reference
//   - [PlaySeries] : Weekly play-count time series for a song
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [CachedSuggestion] : A cached suggestion set for one (scope, query) pair
//   - [Selection] : A resolved label/identifier pair committed through the typeahead
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
