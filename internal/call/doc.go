// Package call defines the contract every call handler implements and the
// lifecycle pieces shared between handlers: the error/status-code policy,
// the outcome value, and fileset fan-out.
//
// The executor drives a handler through Initialize, Configure, the optional
// SetFileset capability, and finally Run, strictly in that order and once
// per configured call.
package call
