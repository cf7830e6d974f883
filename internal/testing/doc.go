// Package testing provides test utilities, builders, and fixtures for unit tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigBuilder: Fluent builder for creating test configurations
//   - DemoConfig / FullConfig: shared fixtures for generator tests
//   - MockContents: testify mock of the repository contents API
//
// Usage:
//
//	cfg := testing.NewConfigBuilder().
//	    WithClusterName("demo").
//	    WithUserPool("pool1", "Standard_D4s_v3", 3).
//	    Build()
package testing
