// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package store persists campaigns and participants with sqlx.
//
// Queries are written with ? placeholders and rebound for the connected
// driver. Uniqueness of campaign names and CPFs comes from database
// constraints; conflicts surface as ErrDuplicate, unknown ids as ErrNotFound.
package store
