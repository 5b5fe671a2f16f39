// Package models defines the domain types shared by the attendance
// reconciliation pipeline: normalized records, tables, comparable keys,
// calendar dates and the optional Value type used as a null-sentinel.
package models
