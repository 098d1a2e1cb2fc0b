// Package tasks orchestrates multi-step backend operations with real-time progress reporting.
//
// # Core Operations
//
// The [Engine] interface defines three operations:
//
//  1. [Engine.Dump] : Fetch the shared backend catalogs
//     - Probes backend health first
//     - Retrieves support rooms, resource hub catalogs, and reminder templates
//     - Returns structured data for backup or offline browsing
//
//  2. [Engine.SyncLocal] : Pull personal data into the local cache
//     - Fetches journal and mood entries from the backend
//     - Deduplicates against the cache by backend ID
//     - Leaves existing cached entries untouched
//
//  3. [Engine.BulkExport] : Export journal and mood data to files
//     - Worker pool writes one file per journal entry (json, markdown, txt)
//     - Rate-limited pagination against the backend
//     - Generates a manifest summarizing the run
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Implementation
//
// [CareEngine] implements [Engine] with dependencies on:
//   - [services.Services] : typed backend clients
//   - [JournalCache], [MoodCache] : optional persistence (repositories)
package tasks
