// Package execshell provides structured helpers for invoking the git binary.
//
// It wraps os/exec behind ShellExecutor, which logs every command through zap
// (optionally as human-readable lifecycle messages), exposes OSCommandRunner
// for default process execution, and defines the abstractions git-lost uses to
// run git in a testable manner.
package execshell
