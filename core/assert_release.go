//go:build !piedebug

package core

const debugAssertions = false
