// Package templates renders a Config into deployable artifacts: Terraform,
// Bicep, ARM JSON, a GitHub Actions workflow and Kubernetes manifests.
//
// Every generator is a pure function of the Config. Optional features are
// rendered as fragments that are either present or empty, and the
// fragments are joined at fixed positions so output is deterministic.
package templates
