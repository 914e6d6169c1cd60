package sqlsource

// Identifiers are validated before they reach this template; backticks quote
// in both MySQL and SQLite.
const selectAllSQL = "SELECT * FROM `%s`"
