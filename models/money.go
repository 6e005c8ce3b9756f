package models

// Money is an amount in minor currency units (e.g. paise or cents).
// All arithmetic in the ledger is integer arithmetic; conversion to a
// display currency is the presentation layer's problem.
type Money int64
