package config

import "os"

// envValue is a seam for tests; it defaults to os.Getenv.
var envValue = os.Getenv
