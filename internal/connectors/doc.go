// Package connectors holds the sources menumem reads menus from outside
// the request path. Today that is the filesystem watcher used by
// 'menumem ingest watch'.
package connectors
