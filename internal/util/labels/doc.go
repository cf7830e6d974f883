// Package labels builds the Azure resource tags and Kubernetes labels that
// every generated template carries.
package labels
