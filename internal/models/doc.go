// Package models defines the core domain models for the health tracker.
//
// # Accounts
//
//   - User: a registered account. Created at registration, never edited or removed.
//
// # Measurements
//
// Every measurement row belongs to exactly one user and carries a calendar
// date in YYYY-MM-DD form. Rows are append-only.
//
//   - BasicMeasurement: age, gender, weight and height
//   - HealthMeasurement: pulse, blood pressure and sleep duration
//   - ActivityMeasurement: activity type, duration and water intake
//
// # Derived values
//
//   - CalculatorResult: audit trail of every computed metric (BMI, body fat, calorie need)
//
// IDs are SQLite row IDs (int64) rather than UUIDs; relationships are expressed
// by ID, never by pointer.
package models
