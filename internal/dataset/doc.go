// Package dataset provides the in-memory table representation used by the
// preprocessing pipeline, together with CSV/Excel loading, CSV saving, and
// the column statistics the cleaning and encoding stages rely on.
//
// # Table Model
//
// A Table is an ordered set of named columns. Each column is a Series with a
// kind (numeric or categorical) inferred at load time: a column is numeric
// iff every non-missing cell parses as a float64. Missing cells (empty,
// "NA", "NaN", case-insensitive) are tracked with a validity mask so the
// cleaning stage can impute them.
//
// # Copy Semantics
//
// Tables are never mutated across stage boundaries. Each pipeline stage
// clones its input and returns a new table, so the raw table survives the
// whole run unchanged.
//
// # Data Flow
//
//	CSV/Excel file → Load → Table → (cleaning, features, encoding) → SaveCSV
package dataset
