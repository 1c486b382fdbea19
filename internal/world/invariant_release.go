//go:build !debug

package world

const debugBuild = false
