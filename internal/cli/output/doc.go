// Package output formats command results for the multiagent CLI.
//
//   - formatter.go: Formatter interface, format parsing
//   - table.go: Tabular values rendered with lipgloss or plain columns
//   - json.go, yaml.go: machine-readable output
package output
