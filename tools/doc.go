// Package tools defines the contract every Nash tool satisfies: a named
// entry function with a declared parameters schema that always returns a
// single readable string, converting every failure into a categorized
// error string instead of raising it to the agent runtime.
package tools
