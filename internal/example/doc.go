// Package example is a small owner built from notifier.yaml: two ping
// endpoints, a telemetry group, an array of workers and an array of shard
// groups.
package example

//go:generate go run github.com/rnkv/notifier-go/cmd/notifiergen -i notifier.yaml
