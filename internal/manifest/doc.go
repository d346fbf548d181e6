// Package manifest handles parsing and validation of plugin.yaml, the
// plugin metadata file that feeds a publish: identifier, version,
// provider, description, and an optional pointer to the capability spec
// document. Validation runs against an embedded JSON Schema.
package manifest
