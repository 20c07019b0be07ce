// Package controller provides the HTTP request handlers of the librarian
// web application: the public catalog, registration, login/logout, and the
// staff-only book management view.
package controller

// BaseController provides common functionality shared by all controllers.
// Authentication gating lives in middleware.RoleRequired; controllers embed
// this for the shared helpers in util.go.
type BaseController struct{}
