// Package driving defines the interfaces that external actors use to
// drive the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI adapter calls these interfaces; core services implement them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driving
