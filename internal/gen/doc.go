// Package gen turns an endpoint schema into the Go source of a notifier
// owner.
//
// A schema lists the endpoints of one owner type:
//   - a single endpoint carries one payload type
//   - a group carries several payload types under one numeric id
//   - either form may be repeated as an array of slots sharing that id
//
// Endpoints are numbered in declaration order. The generated file declares
// the owner, its target type, one broadcast sequence and one locator per
// distinct payload type, the constructor binding every service, and the
// accessors handing out channels and senders.
//
// The flow:
//
//  1. Load or Parse: YAML, TOML or JSONC bytes into a Schema
//  2. Validate: every problem joined into one error
//  3. NewPlan: ids, names and the type-indexed routes
//  4. Render: gofmt-formatted Go source
package gen
