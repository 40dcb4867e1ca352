package explorer

import "errors"

// Error variables for explorer operations.
var (
	ErrNotDirectory = errors.New("not a directory")
	ErrIsDirectory  = errors.New("is a directory")
	ErrNotText      = errors.New("not valid text")
	ErrTargetExists = errors.New("target already exists")
	ErrPathEmpty    = errors.New("path is empty")
	ErrNotAbsolute  = errors.New("start directory must be absolute")

	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrInvalidColorMode   = errors.New("invalid color mode (must be auto, always or never)")
)
