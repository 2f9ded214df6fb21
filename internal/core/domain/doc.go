// Package domain holds the error taxonomy shared by the runtime, the
// hosts and the CLI.
//
// Every failure that crosses a package boundary is a *DomainError with a
// stable code:
//
//   - MA-CHAN-*: message channel full or disconnected
//   - MA-RUN-*:  simulation panic, shutdown timeout, reuse of a manager
//   - MA-SIM-*:  simulation factory or step failure
//   - MA-PRES-*: presentation host failure
//   - MA-SCEN-*: scenario registry
//   - MA-CONF-*: configuration verification
//
// Sentinels are compared with errors.Is, which matches on code only, so
// a sentinel decorated with WithDetails or WithCause still matches.
package domain
