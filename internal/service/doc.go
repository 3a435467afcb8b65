// Package service implements the persistence facade behind the HTTP resources:
// create/update routing, merge-patch, paging defaults and archive-on-delete.
package service
