// Package registry provides the central "glue" for the module system.
//
// The Registry maps the setting-type names used in graph documents (e.g.
// "render_layer") to the setting.Type descriptors that declare each type's
// overridable properties, defaults and hierarchy. Types come from compiled Go
// modules (see the modules/ tree) and from `setting` blocks in documents.
//
// During application startup, the registry is populated once and then only
// read, so it can be shared by concurrent flatten calls.
package registry
