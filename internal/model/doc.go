package model

// Package model defines domain data structures used across the app: download
// requests, video and playlist descriptors, progress events, download
// outcomes and history entries. Structures are designed for direct binding
// in a presentation layer and carry no behavior beyond formatting helpers.
