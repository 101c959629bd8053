// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Sniffer: Converts a raw sample file into a schema document
//   - ProjectStore: Project registry persistence
//   - ConfigStore: Application configuration
//   - IDGenerator / Clock: Injected identity and time
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Assistant: The AI backend. Without it, target discovery, AI source
//     analysis, mapping suggestion and code generation are disabled;
//     local sniffing and manual mapping edits keep working.
package driven
