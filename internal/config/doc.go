// Package config manages registry connection settings. User-level
// settings live at ~/.npr/config.yaml, project-level properties in a
// .npr.yaml next to the build, and both can be overridden by NPR_*
// environment variables or command-line flags. The Resolver collapses
// those layers into one immutable registry.Config per invocation.
package config
