// Package middleware groups the Fiber middlewares shared by the lookup
// service: currently ray-id request tagging under middleware/rayid.
package middleware
