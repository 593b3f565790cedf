// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The channel list can only be expressed in the JSON file; everything else
// can come from any source. The main entry point is [GetStructuredConfig].
package config
