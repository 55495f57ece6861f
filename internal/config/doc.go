/*
Package config loads the mount's ambient tunables — cache capacities, the
metrics endpoint, log verbosity — from an optional YAML file and from
BOTWFS_-prefixed environment variables, layered over NewDefault's values.

Content roots and the work directory are deliberately absent: those are
positional CLI arguments to cmd/botwfs, validated at startup, and are never
written to or read from a config file.
*/
package config
