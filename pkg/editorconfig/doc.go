// Package editorconfig resolves the effective .editorconfig properties for a file.
//
// Resolution happens in two steps. BuildChain walks from a start directory
// towards the filesystem root, reading one configuration file per directory,
// and stops early at a file declaring root = true on any line. The
// resulting Chain is ordered outermost first. Chain.Resolve then replays every
// level for a target path: a section header activates the following
// assignments when its glob matches the target relative to the level's
// directory, later assignments overwrite earlier ones, and the value "unset"
// removes a key. A final defaulting pass fills indent_size and tab_width.
//
// Nothing in this package fails on user content. Unreadable files become empty
// levels, malformed lines are dropped and malformed patterns match literally.
package editorconfig
