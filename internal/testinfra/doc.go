// Package testinfra starts the containers used by integration tests.
//
// Everything here is behind the integration build tag:
//
//	go test -tags integration ./...
//
// Tests call SkipIfNoDocker first so the suite still passes on machines
// without a Docker daemon.
package testinfra
