// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for peer support:
//  1. [RoomListView] : Browse the available support rooms
//  2. [MessageListView] : Read a room's recent messages
//  3. [ChatView] : Compose messages to the AI companion; a failed send falls back to crisis hotline text
//  4. [HotlineView] : Crisis hotlines, shown on demand or when the backend is unreachable
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// A periodic health probe keeps a connectivity indicator in the status bar; when the
// backend becomes unreachable, the hotline catalog cached at startup stays available.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, r, c, h, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
