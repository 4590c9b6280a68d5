// Package content embeds the shipped Lua content: the bestiary, the name
// tables and the event table. Copy the directory to start a custom set.
package content

import "embed"

//go:embed *.lua
var FS embed.FS
