// Package flag exposes the persistent command line options bound into viper.
package flag

import (
	"github.com/spf13/viper"
)

// Verbose returns the number of -v options.
func Verbose() int {
	return viper.GetInt("verbose")
}

// Quiet returns the number of -q options.
func Quiet() int {
	return viper.GetInt("quiet")
}

// ConfigFile returns the file given by --config.
func ConfigFile() string {
	return viper.GetString("config")
}

// Lenient is true when malformed entries should be skipped instead of
// failing the parse.
func Lenient() bool {
	return viper.GetBool("lenient")
}

// NoObsolete is true when obsolete entries should be dropped.
func NoObsolete() bool {
	return viper.GetBool("no-obsolete")
}

// NoColor is true when log output must not be colored.
func NoColor() bool {
	return viper.GetBool("no-color")
}
