package domain

import "errors"

var (
	// ErrDataAccess: the input could not be opened, read or parsed.
	ErrDataAccess = errors.New("data access")
	// ErrSchema: a referenced column is absent from the loaded table.
	ErrSchema = errors.New("schema")
	// ErrUnmappedCategory: a categorical value outside its fixed vocabulary.
	ErrUnmappedCategory = errors.New("unmapped category")
)
