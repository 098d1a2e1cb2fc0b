// Package models defines domain entities and persistence interfaces for the solace grief-support client.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs mirroring backend JSON
//   - [User], [Token] : Account and session types from the auth endpoints
//   - [ChatExchange], [ChatHistoryItem] : AI chatbot conversation payloads
//   - [JournalEntry], [MoodEntry] : Journaling and mood-tracking payloads
//   - [SupportRoom], [SupportMessage] : Peer-support room payloads
//   - [Reminder], [ReminderTemplate] : Scheduled check-in payloads
//   - [Book], [Article], [Video], [Hotline] : Resource hub payloads
//
// 2. Persistent Entities: Rows of the local offline cache
//   - [CachedJournalEntry] : Journal entries mirrored into SQLite
//   - [CachedMoodEntry] : Mood entries mirrored into SQLite
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
