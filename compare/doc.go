// Package compare schedules one question across multiple companies
// with bounded concurrency and merges the per-company answers.
package compare
