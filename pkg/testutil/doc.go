// Package testutil provides shared helpers for qcl tests: an isolated
// config/state environment, input pipes and a scripted lookup executor.
package testutil
