//go:build piedebug

package catalog

const debugBuild = true
