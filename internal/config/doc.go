// Package config defines the format-agnostic settings of an optimization
// run, along with the Loader interface for reading them from a file.
//
// Settings is the single source of truth for the optimizer and output
// packages. The concrete HCL implementation of Loader lives in hclconfig.
package config
