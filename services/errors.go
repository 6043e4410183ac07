package services

import "errors"

var (
	// ErrMissingColumn is returned when the CSV header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrMalformedField is returned when a non-empty numeric field does not parse.
	ErrMalformedField = errors.New("malformed field")
	// ErrEmptyDataset is returned when no record survives cleaning.
	ErrEmptyDataset = errors.New("no movies left after cleaning")
)
