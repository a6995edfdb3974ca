// Package noderegistry maps a node-type tag to its schema and constructor.
// Registration is idempotent and guarded by a mutex; reads take the read
// side of the same RWMutex.
package noderegistry
