// Package registry implements the client side of the plugin registry
// release protocol. A release happens in two phases: a JSON POST creates
// a draft release and returns an opaque release id, then a multipart POST
// uploads the plugin archive against that id. The package also carries
// the failure taxonomy for the protocol and the pre-flight checks run by
// the Publisher before any network activity.
package registry
