//go:build unit

package controllers

// RenderPlan exposes renderPlan for testing.
var RenderPlan = renderPlan //nolint:gochecknoglobals // test-only export

// RuntimeOptions exposes runtimeOptions for testing.
var RuntimeOptions = runtimeOptions //nolint:gochecknoglobals // test-only export
